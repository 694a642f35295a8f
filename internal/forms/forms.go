// Package forms validates submitted HTML forms.
//
// Every form keeps the raw submitted values so a failed submission can be
// rendered again as the user typed it, and collects one message per failing
// field in Errors.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var (
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// Errors maps a form field name to its message.
type Errors map[string]string

func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e Errors) Get(field string) string {
	return e[field]
}

func (e Errors) Any() bool {
	return len(e) > 0
}

// NonField is the key for errors that do not belong to a single input.
const NonField = "__all__"

// Validator returns the shared validator. Field names in errors come from
// the `form` struct tag.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
	})

	return validate
}

var messages = map[string]string{
	"required": "Обязательное поле.",
	"email":    "Введите правильный адрес электронной почты.",
	"username": "Введите правильное имя пользователя. Оно может содержать только буквы, цифры и знаки @/./+/-/_.",
	"eqfield":  "Введенные пароли не совпадают.",
	"slug":     "Значение должно состоять только из латинских букв, цифр, знаков подчеркивания или дефиса.",
	"number":   invalidChoice,
}

var messagesWithParam = map[string]string{
	"max": "Убедитесь, что это значение содержит не более %s символов.",
	"min": "Убедитесь, что это значение содержит не менее %s символов.",
}

const invalidChoice = "Выберите корректный вариант. Вашего варианта нет среди допустимых значений."

func translate(fe validator.FieldError) string {
	if message, ok := messages[fe.Tag()]; ok {
		return message
	}
	if template, ok := messagesWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(template, fe.Param())
	}
	return "Некорректное значение."
}

// check validates s and records a message per failing field into errs.
func check(s any, errs Errors) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("ошибка валидации формы: %w", err)
	}

	for _, fe := range validationErrs {
		errs.Add(fe.Field(), translate(fe))
	}
	return nil
}
