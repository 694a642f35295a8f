package forms

import "strings"

// GroupForm is filled by administrative tools, not by the site.
type GroupForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"required,max=50,slug"`
	Description string `form:"description"`
	Errors      Errors `form:"-" validate:"-"`
}

func NewGroupForm(title, slug, description string) *GroupForm {
	return &GroupForm{
		Title:       strings.TrimSpace(title),
		Slug:        strings.TrimSpace(slug),
		Description: strings.TrimSpace(description),
		Errors:      Errors{},
	}
}

func (f *GroupForm) Validate() (bool, error) {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	if err := check(f, f.Errors); err != nil {
		return false, err
	}
	return !f.Errors.Any(), nil
}
