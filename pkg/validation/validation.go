package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/MohamedX1935/SkillBoard/internal/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the enum tags shared with the models package.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		models.RegisterValidations(v)
	}
}

// Message converts binding/validation errors into a single client-facing
// sentence. Only the first failing field is reported.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return "corps de requête vide"
	case errors.As(err, &se):
		return "JSON invalide"
	case errors.As(err, &ute):
		return fmt.Sprintf("%s: type invalide", ute.Field)
	}

	// json.Decoder.DisallowUnknownFields reports `json: unknown field "x"`
	if msg := err.Error(); strings.HasPrefix(msg, "json: unknown field ") {
		return "champ inconnu " + strings.TrimPrefix(msg, "json: unknown field ")
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fe.Field() + ": " + formatFieldError(fe)
	}

	return err.Error()
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "champ requis"
	case "email":
		return "adresse email invalide"
	case "role":
		return "doit être l'une des valeurs " + join(models.Roles)
	case "skilllevel":
		return "doit être l'une des valeurs " + join(models.SkillLevels)
	case "trainingstatus":
		return "doit être l'une des valeurs " + join(models.TrainingStatuses)
	}
	return "valeur invalide (" + fe.Tag() + ")"
}

func join[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
