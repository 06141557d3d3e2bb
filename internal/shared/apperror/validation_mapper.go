package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// employee_id -> employee id -> Employee Id
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns a request bind failure into a 400. Validator
// errors report only the first failing field; anything else (malformed JSON,
// a wrong type) becomes INVALID_INPUT.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		humanReadableField := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(humanReadableField)
		default:
			return InvalidField(humanReadableField)
		}
	}

	return Wrap(err, CodeInvalidInput, "Invalid input", http.StatusBadRequest)
}

// FieldErrors flattens validator errors into a field -> message map.
// custom is keyed by "field.tag"; unmatched failures get generic wording.
func FieldErrors(err error, custom map[string]string) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		out["_"] = err.Error()
		return out
	}

	for _, e := range errs {
		field := e.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if msg, ok := custom[field+"."+e.Tag()]; ok {
			out[field] = msg
			continue
		}
		if e.Tag() == "required" {
			out[field] = formatFieldName(field) + " is required"
		} else {
			out[field] = formatFieldName(field) + " is invalid"
		}
	}
	return out
}
