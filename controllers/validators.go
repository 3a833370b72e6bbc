package controllers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"foodgram/tools"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adiciona ao validator do gin as regras "slug" e
// "username" e faz os erros usarem o nome json do campo.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return tools.ValidateSlug(fl.Field().String())
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return tools.ValidateUsername(fl.Field().String())
		})
	})
}

// respondBindError responde 400 com {campo: [mensagem]} para erros do validator.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	out := gin.H{}
	for _, fe := range verrs {
		out[fe.Field()] = []string{fieldMessage(fe)}
	}
	c.JSON(http.StatusBadRequest, out)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "hexcolor":
		return "enter a valid hex color"
	case "slug":
		return "only letters, digits, - and _ are allowed"
	case "username":
		return "only letters, digits and @/./+/-/_ are allowed"
	case "min":
		return "must have at least " + fe.Param() + " characters"
	case "max":
		return "must have at most " + fe.Param() + " characters"
	}
	return "invalid value"
}
