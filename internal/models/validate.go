package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	RegisterValidations(v)
	return v
}

// RegisterValidations installs the enum tags (role, skilllevel,
// trainingstatus) on v. Used for both the model validator and gin binding.
func RegisterValidations(v *validator.Validate) {
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return Role(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("skilllevel", func(fl validator.FieldLevel) bool {
		return SkillLevel(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("trainingstatus", func(fl validator.FieldLevel) bool {
		return TrainingStatus(fl.Field().String()).Valid()
	})
}

func validateStruct(s interface{}) error {
	return validate.Struct(s)
}
