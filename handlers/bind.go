package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MohamedX1935/SkillBoard/pkg/response"
	"github.com/MohamedX1935/SkillBoard/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const msgMissingUserFields = "Nom, email et mot de passe requis"

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return false
	}
	return true
}

// bindPatch is bindJSON for partial updates: unknown fields are rejected so
// a typo cannot silently turn into a no-op.
func bindPatch(c *gin.Context, dst interface{}) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil {
		err = binding.Validator.ValidateStruct(dst)
	}
	if err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return false
	}
	return true
}

// bindNewUser reports any missing mandatory field with a single message.
func bindNewUser(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
		response.Fail(c, http.StatusBadRequest, msgMissingUserFields)
		return false
	}
	response.Fail(c, http.StatusBadRequest, validation.Message(err))
	return false
}
