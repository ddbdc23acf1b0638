package validator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

var (
	validate      = newValidate()
	customMessage = map[string]string{}

	schemeRe = regexp.MustCompile(`(?i)^https?://`)
)

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so messages line up with request bodies.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("lenienturl", func(fl validator.FieldLevel) bool {
		return IsLenientURL(fl.Field().String())
	})

	return v
}

// IsLenientURL accepts absolute http(s) URLs and bare host[/path] values,
// which are read as https.
func IsLenientURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if !schemeRe.MatchString(raw) {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Host != "" && !strings.ContainsAny(u.Host, " \t")
}

// RegisterValidation adds a custom tag to the shared validator together with
// the message reported when it fails. Call it from package init.
func RegisterValidation(tag string, fn validator.Func, message string) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
	customMessage[tag] = message
}

// Validate validates a struct using go-playground/validator tags.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return &ValidationError{Errors: validationErrors}
		}
		return err
	}
	return nil
}

type fieldMessage struct {
	field   string
	message string
}

// ValidationError wraps validator.ValidationErrors with a user-friendly message.
// Rule violations the tags cannot express are attached with WithField.
type ValidationError struct {
	Errors validator.ValidationErrors
	extra  []fieldMessage
}

// NewFieldError returns a ValidationError carrying a single field message.
func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{extra: []fieldMessage{{field: field, message: message}}}
}

// WithField attaches a field message to err. A nil err starts a new
// ValidationError; an error of any other kind is returned unchanged.
func WithField(err error, field, message string) error {
	if err == nil {
		return NewFieldError(field, message)
	}
	valErr, ok := err.(*ValidationError)
	if !ok {
		return err
	}
	valErr.extra = append(valErr.extra, fieldMessage{field: field, message: message})
	return valErr
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, err := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("field '%s' %s", err.Field(), msgForTag(err)))
	}
	for _, fm := range e.extra {
		msgs = append(msgs, fmt.Sprintf("field '%s' %s", fm.field, fm.message))
	}
	return strings.Join(msgs, "; ")
}

// Fields returns a map of field names to error messages.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Errors)+len(e.extra))
	for _, err := range e.Errors {
		fields[err.Field()] = msgForTag(err)
	}
	for _, fm := range e.extra {
		if _, exists := fields[fm.field]; !exists {
			fields[fm.field] = fm.message
		}
	}
	return fields
}

func msgForTag(fe validator.FieldError) string {
	if msg, ok := customMessage[fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "url", "lenienturl":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}

// DecodeAndValidate reads JSON from the request body, decodes it into dst,
// and validates it.
func DecodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return Validate(dst)
}
