package entities

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Common errors
var (
	ErrMalformedRecord  = errors.New("malformed record")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidQuery     = errors.New("invalid query")
	ErrNotFound         = errors.New("record not found")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrConsentRequired  = errors.New("data processing consent is required")
)

// MalformedRecordError reports a row of a CSV file that could not be turned
// into a record. Line is 1-based and counts the header row.
type MalformedRecordError struct {
	File   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "malformed record in %s at line %d", e.File, e.Line)
	if e.Column != "" {
		fmt.Fprintf(&b, ", column %s", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (value %q)", e.Value)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// FieldError describes one failed rule on one field
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func (f FieldError) String() string {
	switch f.Rule {
	case "required":
		return f.Field + " is required"
	case "email":
		return f.Field + " must be a valid email address"
	case "oneof":
		return f.Field + " must be one of: " + f.Param
	case "gte":
		return f.Field + " must be at least " + f.Param
	case "finite":
		return f.Field + " must be a finite number"
	case "unique":
		return f.Field + " is already taken"
	default:
		if f.Param != "" {
			return fmt.Sprintf("%s failed %s=%s", f.Field, f.Rule, f.Param)
		}
		return fmt.Sprintf("%s failed %s", f.Field, f.Rule)
	}
}

// ValidationError lists every field that failed validation
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.String())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, rule string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule}}}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"csv", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	if err := v.RegisterValidation("finite", isFinite); err != nil {
		panic(err)
	}
	return v
}

// isFinite rejects NaN and infinities on float fields
func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		return !math.IsNaN(f.Float()) && !math.IsInf(f.Float(), 0)
	default:
		return true
	}
}

// ValidateStruct runs the struct's validate tags and converts failures into
// a *ValidationError. Field names come from the csv tag, then the json tag.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
