package global

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared struct validator
var Validate *validator.Validate

var validatorMu sync.Mutex

// InitValidator creates the validator and registers the custom rules
func InitValidator() {
	validatorMu.Lock()
	defer validatorMu.Unlock()

	v := validator.New()

	_ = v.RegisterValidation("no_comma", validateNoComma)
	_ = v.RegisterValidation("product_status", validateProductStatus)
	_ = v.RegisterValidation("no_xss", validateNoXSS)

	Validate = v
}

// Validator returns the shared validator, creating it on first use
func Validator() *validator.Validate {
	validatorMu.Lock()
	v := Validate
	validatorMu.Unlock()
	if v == nil {
		InitValidator()
		return Validate
	}
	return v
}

// validateNoComma rejects values that would break the comma separated credentials file
func validateNoComma(fl validator.FieldLevel) bool {
	return !strings.Contains(fl.Field().String(), ",")
}

// validateProductStatus accepts the statuses the catalog knows; empty means Active
func validateProductStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "Active", "Inactive", "Deleted":
		return true
	}
	return false
}

// validateNoXSS rejects markup in free text fields that end up in spreadsheets and dialogs
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"<iframe",
		"<object",
		"<embed",
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}
