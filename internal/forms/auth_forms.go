package forms

import (
	"net/url"
	"strings"
)

type LoginForm struct {
	Username string `form:"username" validate:"required,max=150"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next" validate:"-"`
	Errors   Errors `form:"-" validate:"-"`
}

func NewLoginForm(values url.Values) *LoginForm {
	return &LoginForm{
		Username: strings.TrimSpace(values.Get("username")),
		Password: values.Get("password"),
		Next:     values.Get("next"),
		Errors:   Errors{},
	}
}

func (f *LoginForm) Validate() (bool, error) {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	if err := check(f, f.Errors); err != nil {
		return false, err
	}
	return !f.Errors.Any(), nil
}

type SignupForm struct {
	FirstName       string `form:"first_name" validate:"max=150"`
	LastName        string `form:"last_name" validate:"max=150"`
	Username        string `form:"username" validate:"required,max=150,username"`
	Email           string `form:"email" validate:"omitempty,max=254,email"`
	Password        string `form:"password1" validate:"required,min=8"`
	PasswordConfirm string `form:"password2" validate:"required,eqfield=Password"`
	Errors          Errors `form:"-" validate:"-"`
}

func NewSignupForm(values url.Values) *SignupForm {
	return &SignupForm{
		FirstName:       strings.TrimSpace(values.Get("first_name")),
		LastName:        strings.TrimSpace(values.Get("last_name")),
		Username:        strings.TrimSpace(values.Get("username")),
		Email:           strings.TrimSpace(values.Get("email")),
		Password:        values.Get("password1"),
		PasswordConfirm: values.Get("password2"),
		Errors:          Errors{},
	}
}

func (f *SignupForm) Validate() (bool, error) {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	if err := check(f, f.Errors); err != nil {
		return false, err
	}
	return !f.Errors.Any(), nil
}
