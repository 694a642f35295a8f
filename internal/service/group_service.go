package service

import (
	"context"
	"fmt"
	"strings"

	"yatube/internal/forms"
	"yatube/internal/logging"
	"yatube/internal/models"
	"yatube/internal/repository"
)

type GroupService interface {
	ListGroups(ctx context.Context) ([]models.Group, error)
	GetGroupByID(ctx context.Context, groupID int64) (*models.Group, error)
	CreateGroup(ctx context.Context, form *forms.GroupForm) (*models.Group, error)
	DeleteGroup(ctx context.Context, slug string) error
}

// FormError reports a form that failed validation.
type FormError struct {
	Errors forms.Errors
}

func (e *FormError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for field, message := range e.Errors {
		parts = append(parts, field+": "+message)
	}
	return "форма заполнена неверно: " + strings.Join(parts, "; ")
}

type groupService struct {
	groupRepo repository.GroupRepository
}

func NewGroupService(groupRepo repository.GroupRepository) GroupService {
	return &groupService{groupRepo: groupRepo}
}

func (s *groupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.List(ctx)
}

func (s *groupService) GetGroupByID(ctx context.Context, groupID int64) (*models.Group, error) {
	return s.groupRepo.GetByID(ctx, groupID)
}

func (s *groupService) CreateGroup(ctx context.Context, form *forms.GroupForm) (*models.Group, error) {
	ok, err := form.Validate()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &FormError{Errors: form.Errors}
	}

	group := &models.Group{
		Title:       form.Title,
		Slug:        form.Slug,
		Description: form.Description,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Str("slug", group.Slug).Msg("группа создана")
	return group, nil
}

// DeleteGroup removes a group by slug. Its posts stay, without a group.
func (s *groupService) DeleteGroup(ctx context.Context, slug string) error {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if err := s.groupRepo.Delete(ctx, group.ID); err != nil {
		return fmt.Errorf("удаление группы %q: %w", slug, err)
	}

	logging.Ctx(ctx).Info().Str("slug", slug).Msg("группа удалена")
	return nil
}
