package validators

import (
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.]{3,30}$`)

// reservedUsernames collide with static segments under /users/.
var reservedUsernames = map[string]bool{
	"me":        true,
	"suggested": true,
}

// CustomValidator adapts go-playground/validator to echo.Validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates the validator used by c.Validate
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return IsUsername(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate checks i against its validate tags. Failures come back as a 400
// HTTPError listing every offending field.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, Describe(err))
	}
	return nil
}

// IsUsername reports whether s is an acceptable username.
func IsUsername(s string) bool {
	return usernamePattern.MatchString(s) && !reservedUsernames[strings.ToLower(s)]
}

// Describe turns a validation error into a message fit for clients.
func Describe(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid request payload"
	}

	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, describeField(fe))
	}
	return strings.Join(msgs, "; ")
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "username":
		return fmt.Sprintf("%s must be 3-30 letters, digits, '_' or '.' and not a reserved word", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// fieldName reports fields by their JSON name so messages match the payload.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}
