package controllers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Catalog names must contain something other than whitespace.
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}
