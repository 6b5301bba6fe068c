// Package inputval validates submitted form input with struct tags and
// turns the first failure into a French message fit for a flash notice.
//
// Fields carry a `validate` tag (go-playground/validator rules), a `label`
// tag used in default messages, and an optional `msg` tag overriding the
// message per rule: `msg:"required=Email requis !;pemail=Format email invalide !"`.
package inputval

import (
	"errors"
	"fmt"
	"net/mail"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/longrichadmin/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("pemail", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("categorie", func(fl validator.FieldLevel) bool {
			return models.Categorie(fl.Field().String()).Valid()
		})
		instance = v
	})
	return instance
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Result collects every failed rule in declaration order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the message of the first failure, or "".
func (r Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// For returns the first message for a struct field name, or "".
func (r Result) For(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Validate checks v (a struct or pointer to struct) against its tags.
func Validate(v any) Result {
	err := engine().Struct(v)
	if err == nil {
		return Result{}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{Errors: []FieldError{{Message: "Formulaire invalide"}}}
	}

	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := Result{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		sf, _ := t.FieldByName(fe.StructField())
		out.Errors = append(out.Errors, FieldError{
			Field:   fe.StructField(),
			Tag:     fe.Tag(),
			Message: message(sf, fe),
		})
	}
	return out
}

func message(sf reflect.StructField, fe validator.FieldError) string {
	if custom := overrides(sf.Tag.Get("msg"))[fe.Tag()]; custom != "" {
		return custom
	}

	label := sf.Tag.Get("label")
	if label == "" {
		label = fe.StructField()
	}

	switch fe.Tag() {
	case "required":
		return label + " requis"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s : minimum %s caractères", label, fe.Param())
		}
		return fmt.Sprintf("%s : minimum %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s : maximum %s caractères", label, fe.Param())
		}
		return fmt.Sprintf("%s : maximum %s", label, fe.Param())
	default:
		return label + " invalide"
	}
}

func overrides(tag string) map[string]string {
	if tag == "" {
		return nil
	}
	m := make(map[string]string)
	for _, part := range strings.Split(tag, ";") {
		rule, msg, ok := strings.Cut(part, "=")
		if ok {
			m[strings.TrimSpace(rule)] = strings.TrimSpace(msg)
		}
	}
	return m
}

// IsValidEmail reports whether s is a bare address (no display name) with a
// well-formed local part and domain. Single-label domains are accepted.
func IsValidEmail(s string) bool {
	if s == "" || strings.TrimSpace(s) != s || strings.ContainsAny(s, " \t\r\n<>") {
		return false
	}

	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	for _, part := range []string{local, domain} {
		if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") || strings.Contains(part, "..") {
			return false
		}
	}

	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s
}
