package validators

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// InputParam carries the JSON-encoded input of GET procedure calls.
const InputParam = "input"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// DecodeInput reads a procedure input from the ?input= query parameter on GET
// and from the request body otherwise, then validates it. A missing input
// decodes as an empty object so required-field checks still run.
func DecodeInput(r *http.Request, dest any) error {
	if r.Method == http.MethodGet {
		return decodeStrict(strings.NewReader(emptyAsObject(r.URL.Query().Get(InputParam))), dest)
	}
	return DecodeJSONBody(r, dest)
}

func DecodeJSONBody(r *http.Request, dest any) error {
	if r.Body == nil {
		return decodeStrict(strings.NewReader("{}"), dest)
	}
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body")
	}
	return decodeStrict(bytes.NewReader([]byte(emptyAsObject(string(raw)))), dest)
}

// Validate runs struct validation on an already-decoded value.
func Validate(value any) error {
	if err := validate.Struct(value); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func decodeStrict(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid input").WithDetails(map[string]any{"error": err.Error()})
	}
	if decoder.More() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid input").WithDetails(map[string]any{"error": "unexpected trailing data"})
	}
	return Validate(dest)
}

func emptyAsObject(raw string) string {
	if trimmed := strings.TrimSpace(raw); trimmed != "" && trimmed != "null" {
		return trimmed
	}
	return "{}"
}

func formatValidationErrors(err error) *pkgerrors.Error {
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "validation misconfigured")
	}
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldPath(fieldErr)] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

// fieldPath drops the root struct name so nested items read as items[0].fuelGrade.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gtefield":
		return fmt.Sprintf("must not be before %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	}
	return "is invalid"
}
