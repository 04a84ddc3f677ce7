package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/calref/user-api/internal/api/shared"
)

// NewValidator builds the request validator. Field names in validation
// output use the json tag so clients see the names they sent.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into dst. A malformed body is a
// validation failure (422), matching the treatment of any other bad
// input.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		shared.RespondWithValidationErrors(w, r, []shared.FieldError{{
			Field:   "body",
			Message: "invalid JSON body: " + err.Error(),
			Type:    "json_invalid",
		}})
		return false
	}
	return true
}

// ValidateStruct runs the validator against the decoded request and, on
// failure, writes the 422 envelope with one entry per failed field.
func ValidateStruct(w http.ResponseWriter, r *http.Request, v *validator.Validate, req any) bool {
	err := v.Struct(req)
	if err == nil {
		return true
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		// Not a field-level failure; treat as a malformed request.
		shared.RespondWithValidationErrors(w, r, []shared.FieldError{{
			Field:   "body",
			Message: "request could not be validated",
			Type:    "invalid",
		}})
		return false
	}

	fields := make([]shared.FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, shared.FieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
			Type:    fe.Tag(),
		})
	}
	shared.RespondWithValidationErrors(w, r, fields)
	return false
}

// validationMessage maps a validator tag to a user-facing message.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		return fmt.Sprintf("value is too short (minimum %s)", fe.Param())
	case "max":
		return fmt.Sprintf("value is too long (maximum %s)", fe.Param())
	default:
		return "invalid value"
	}
}

// ParsePathID parses an integer path parameter, writing the 422 envelope
// on failure.
func ParsePathID(w http.ResponseWriter, r *http.Request, raw, field string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		shared.RespondWithValidationErrors(w, r, []shared.FieldError{{
			Field:   field,
			Message: "value is not a valid integer",
			Type:    "int_parsing",
		}})
		return 0, false
	}
	return id, true
}

// ParseQueryInt parses an optional non-negative integer query parameter,
// falling back to def when absent. Writes the 422 envelope on failure.
func ParseQueryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}

	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		shared.RespondWithValidationErrors(w, r, []shared.FieldError{{
			Field:   name,
			Message: "value is not a valid non-negative integer",
			Type:    "int_parsing",
		}})
		return 0, false
	}
	return val, true
}
