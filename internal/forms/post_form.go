package forms

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"yatube/internal/models"
	"yatube/internal/repository"
)

// GroupLookup resolves the group chosen in a post form.
// A missing group is reported with repository.ErrNotFound.
type GroupLookup interface {
	GetGroupByID(ctx context.Context, groupID int64) (*models.Group, error)
}

// PostInput is a validated post form, ready to be stored.
type PostInput struct {
	Text    string
	GroupID *int64
}

type PostForm struct {
	Text   string `form:"text" validate:"required"`
	Group  string `form:"group" validate:"omitempty,number"`
	Errors Errors `form:"-" validate:"-"`
}

func NewPostForm(values url.Values) *PostForm {
	return &PostForm{
		Text:   values.Get("text"),
		Group:  values.Get("group"),
		Errors: Errors{},
	}
}

// PostFormFromPost prefills the form with a stored post.
func PostFormFromPost(post *models.Post) *PostForm {
	form := &PostForm{Text: post.Text, Errors: Errors{}}
	if post.GroupID != nil {
		form.Group = strconv.FormatInt(*post.GroupID, 10)
	}
	return form
}

// SelectedGroup reports whether the group option id is the one in the form.
func (f *PostForm) SelectedGroup(groupID int64) bool {
	return f.Group == strconv.FormatInt(groupID, 10)
}

// Validate checks the form. ok is false when a field failed and f.Errors
// says which; err is reserved for lookup failures.
func (f *PostForm) Validate(ctx context.Context, groups GroupLookup) (input PostInput, ok bool, err error) {
	if f.Errors == nil {
		f.Errors = Errors{}
	}

	trimmed := PostForm{
		Text:  strings.TrimSpace(f.Text),
		Group: strings.TrimSpace(f.Group),
	}
	if err := check(&trimmed, f.Errors); err != nil {
		return PostInput{}, false, err
	}

	input.Text = trimmed.Text

	if trimmed.Group != "" && f.Errors.Get("group") == "" {
		groupID, parseErr := strconv.ParseInt(trimmed.Group, 10, 64)
		if parseErr != nil {
			f.Errors.Add("group", invalidChoice)
		} else {
			group, lookupErr := groups.GetGroupByID(ctx, groupID)
			switch {
			case errors.Is(lookupErr, repository.ErrNotFound):
				f.Errors.Add("group", invalidChoice)
			case lookupErr != nil:
				return PostInput{}, false, lookupErr
			default:
				input.GroupID = &group.ID
			}
		}
	}

	if f.Errors.Any() {
		return PostInput{}, false, nil
	}
	return input, true, nil
}
