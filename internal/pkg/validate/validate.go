package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/ec5/ec5-api/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// v is the package-level singleton validator. Custom rules are registered
// in init() before the first call to Struct or Errors.
var v = validator.New()

var projectNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _-]{2,49}$`)

// Slugs that collide with application routes.
var reservedSlugs = map[string]struct{}{
	"create": {}, "api": {}, "login": {}, "logout": {}, "admin": {},
}

// codes maps validator tags to client error codes.
var codes = map[string]string{
	"required":         domain.CodeRequired,
	"max":              domain.CodeTooLong,
	"email":            domain.CodeInvalidValue,
	"ec5_uuid":         domain.CodeInvalidUUID,
	"ec5_project_name": domain.CodeInvalidProjectName,
	"ec5_slug_free":    domain.CodeReservedProjectName,
}

func init() {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	mustRegister("ec5_uuid", func(fl validator.FieldLevel) bool {
		_, err := uuid.Parse(fl.Field().String())
		return err == nil
	})
	mustRegister("ec5_project_name", func(fl validator.FieldLevel) bool {
		return projectNamePattern.MatchString(fl.Field().String())
	})
	mustRegister("ec5_slug_free", func(fl validator.FieldLevel) bool {
		_, reserved := reservedSlugs[Slug(fl.Field().String())]
		return !reserved
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// Slug lowercases name and joins its words with dashes.
func Slug(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
	return strings.Join(fields, "-")
}

// ProjectName checks name against the project naming rules and returns the
// first failing code, or "" when the name is acceptable.
func ProjectName(name string) string {
	err := v.Var(name, "ec5_project_name,ec5_slug_free")
	if err == nil {
		return ""
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok || len(ve) == 0 {
		return domain.CodeInvalidValue
	}
	if code, ok := codes[ve[0].Tag()]; ok {
		return code
	}
	return domain.CodeInvalidValue
}

// Errors validates s and returns failures keyed by json field name, each
// carrying its error code. A nil map means s is valid.
func Errors(s interface{}) map[string][]string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"validation": {domain.CodeInvalidValue}}
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		code, ok := codes[fe.Tag()]
		if !ok {
			code = domain.CodeInvalidValue
		}
		field := fe.Field()
		out[field] = append(out[field], code)
	}
	return out
}
