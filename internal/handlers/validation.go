package handlers

import (
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// currencyCodeValidator accepts 2 to 5 ASCII letters, any case.
var currencyCodeValidator validator.Func = func(fl validator.FieldLevel) bool {
	code, ok := fl.Field().Interface().(string)
	return ok && domain.IsValidCode(code)
}

// registerValidators installs the custom binding tags on gin's validator.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currencycode", currencyCodeValidator)
	}
}
