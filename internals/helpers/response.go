package helper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct runs the validate tags; the error (if any) is a validator.ValidationErrors
// and is turned into a 422 by the error handler.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// FieldErrors is a validation failure found outside struct tags
// (cross-document checks, date ordering). It is reported as a 422.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msgs := range fe {
		parts = append(parts, field+": "+strings.Join(msgs, ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// ValidationMessages turns validator errors into field -> messages.
func ValidationMessages(err error) (map[string][]string, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, false
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], messageFor(fe))
	}
	return out, true
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "invalid email format"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "gt", "gte":
		return fe.Field() + " must be greater than " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "datetime":
		return fe.Field() + " must match format " + fe.Param()
	case "len":
		return fe.Field() + " must be exactly " + fe.Param() + " characters"
	case "uuid4", "uuid":
		return fe.Field() + " must be a valid id"
	default:
		return "invalid value"
	}
}

func NewID() string {
	return uuid.NewString()
}

// IDParam reads a uuid path parameter; malformed ids are a 400.
func IDParam(c *fiber.Ctx, name string) (string, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "ID must not be empty")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid ID format")
	}
	return id.String(), nil
}

// BindAndValidate parses the JSON body into dst and validates it.
func BindAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return ValidateStruct(dst)
}
