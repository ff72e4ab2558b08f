package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"demo-credit/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.@+]+$`)
	personNameRe = regexp.MustCompile(`^\p{L}[\p{L}\- ]*$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidators(v)
	}
}

// RegisterValidators installs the custom tags used by the request types.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("safe_id", validateSafeID)
	_ = v.RegisterValidation("person_name", validatePersonName)
	_ = v.RegisterValidation("decimal_amount", validateDecimalAmount)
	_ = v.RegisterValidation("bank_code", validateBankCode)
}

// validateSafeID allows alphanumeric plus _ - . @ + (usernames).
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

// validatePersonName accepts 1..20 letters, spaces and hyphens, starting with a letter.
func validatePersonName(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if len([]rune(s)) == 0 || len([]rune(s)) > domain.MaxNameLength {
		return false
	}
	return personNameRe.MatchString(s)
}

// validateDecimalAmount only checks the value parses as a decimal.
// Sign, precision and ceiling are business rules checked by the wallet service.
func validateDecimalAmount(fl validator.FieldLevel) bool {
	_, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil
}

func validateBankCode(fl validator.FieldLevel) bool {
	_, ok := domain.LookupBank(fl.Field().String())
	return ok
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer. Fields tagged sanitize:"-"
// are left untouched.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() || rt.Field(i).Tag.Get("sanitize") == "-" {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				s := sanitize(elem.String())
				elem.SetString(s)
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
