package httpx

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"reflect"
	"strings"
)

type FieldErrors map[string]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

type problemer interface {
	Problems() map[string]string
}

// checkFields runs tag validation plus any Problems the payload reports.
// It returns nil when the payload is acceptable.
func checkFields(payload any) FieldErrors {
	out := FieldErrors{}
	if err := validate.Struct(payload); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			out["_"] = "invalid payload"
			return out
		}
		for _, fe := range ve {
			out[fe.Field()] = messageForTag(fe.Tag(), fe.Param())
		}
	}
	if p, ok := payload.(problemer); ok {
		for k, v := range p.Problems() {
			if _, seen := out[k]; !seen {
				out[k] = v
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", param)
	case "gt":
		return fmt.Sprintf("must be greater than %s", param)
	case "lte":
		return fmt.Sprintf("must be at most %s", param)
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	default:
		return "is invalid"
	}
}
