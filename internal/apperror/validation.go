package apperror

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldError names one offending request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

var (
	translatorOnce sync.Once
	translator     ut.Translator
)

// InitValidators wires English messages and JSON field names into gin's
// validator engine.
func InitValidators() {
	translatorOnce.Do(func() {
		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")

		validate, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = en_translations.RegisterDefaultTranslations(validate, translator)
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// FromBinding converts a gin binding failure into a validation error listing
// every offending field.
func FromBinding(err error) *Error {
	InitValidators()

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fieldPath(fe), Error: fe.Translate(translator)})
		}
		return Validation(fields...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return Validation(FieldError{Field: field, Error: "must be of type " + typeErr.Type.String()})
	}
	return Validation(FieldError{Field: "body", Error: err.Error()})
}

// fieldPath drops the top-level struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
