package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/invoice-dashboard/internal/errs"
)

// validate is shared by every payload. validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report field names as the client submitted them: the form tag first,
	// then the json tag, then the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	return v
}

// MustRegister adds a custom validation tag. It panics on an invalid tag so
// registration mistakes surface at start-up.
func MustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// MessageFunc returns the message for a failed field, or "" to fall back to
// the generic tag message.
type MessageFunc func(fe validator.FieldError) string

// CollectFieldErrors turns a validation error into FieldErrors. It returns
// nil for a nil error.
func CollectFieldErrors(err error, messages MessageFunc) errs.FieldErrors {
	if err == nil {
		return nil
	}

	fieldErrors := errs.FieldErrors{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors.Add("_", err.Error())
		return fieldErrors
	}

	for _, fe := range validationErrors {
		msg := ""
		if messages != nil {
			msg = messages(fe)
		}
		if msg == "" {
			msg = tagMessage(fe)
		}
		fieldErrors.Add(fe.Field(), msg)
	}

	return fieldErrors
}

// tagMessage converts a validator tag failure into a readable message.
func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "email":
		return "must be a valid email address"

	case "uuid":
		return "must be a valid UUID"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
	}
}

// Bind populates payload from path params and the request body.
//
// Only malformed requests fail here (400). Field rules are left to the
// action so it can answer with its own form state.
func Bind(c echo.Context, payload any) error {
	if err := c.Bind(payload); err != nil {
		message := "Invalid request payload"

		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if m, ok := echoErr.Message.(string); ok && m != "" {
				message = m
			}
		}

		return errs.NewBadRequestError(message, false, nil, nil, nil)
	}

	return nil
}

// uuidRegex matches xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID checks UUID format only, not version/variant semantics.
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(uuid)
}
