package service

import (
	"context"

	"yatube/internal/logging"
	"yatube/internal/models"
	"yatube/internal/repository"
)

type UserService interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	DeleteUser(ctx context.Context, username string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetUserByUsername(ctx, username)
}

// DeleteUser removes the user together with all of their posts.
func (s *userService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, user.ID); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().Str("username", username).Msg("пользователь удалён")
	return nil
}
