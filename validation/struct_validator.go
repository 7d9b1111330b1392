package validation

import (
	stderrors "errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/arangodb/errors"
)

const (
	tagKey      = "arango_key"
	tagName     = "arango_name"
	tagDatabase = "arango_db"
)

var (
	keyPattern      = regexp.MustCompile(`^[A-Za-z0-9_\-:.@()+,=;$!*'%]{1,254}$`)
	namePattern     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]{0,255}$`)
	databasePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]{0,63}$`)
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their wire names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = validate.RegisterValidation(tagKey, matchString(keyPattern))
		_ = validate.RegisterValidation(tagName, matchString(namePattern))
		_ = validate.RegisterValidation(tagDatabase, matchString(databasePattern))
	})
	return validate
}

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Struct validates a struct using its `validate` tags. Fields are named by
// their json tag in the returned *errors.ValidationError.
func Struct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return errors.NewValidationError("struct", "", err.Error()).WithCause(err)
	}

	fields := make([]string, 0, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, e.Field())
		messages = append(messages, e.Field()+" "+formatValidationError(e))
	}

	return errors.NewValidationError(strings.Join(fields, ","), "", strings.Join(messages, "; ")).WithCause(err)
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case tagKey:
		return "is not a valid document key"
	case tagName:
		return "is not a valid collection or graph name"
	case tagDatabase:
		return "is not a valid database name"
	default:
		return "is invalid"
	}
}
