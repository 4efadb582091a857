package constraint

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	emailOnce     sync.Once
	emailValidate *validator.Validate
)

func emailValidator() *validator.Validate {
	emailOnce.Do(func() {
		emailValidate = validator.New()
	})
	return emailValidate
}

// isEmail defers address syntax to the validator "email" tag and additionally
// requires a dotted domain, which the tag alone does not enforce.
func isEmail(value string) bool {
	if value == "" || strings.TrimSpace(value) != value {
		return false
	}
	if err := emailValidator().Var(value, "required,email"); err != nil {
		return false
	}
	at := strings.LastIndexByte(value, '@')
	if at <= 0 {
		return false
	}
	labels := strings.Split(value[at+1:], ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" {
			return false
		}
	}
	return true
}
