package service

import (
	"errors"

	"yatube/internal/config"
	"yatube/internal/repository"
)

var (
	ErrNotAuthor          = errors.New("редактировать пост может только его автор")
	ErrInvalidCredentials = errors.New("неверное имя пользователя или пароль")
	ErrInvalidSession     = errors.New("недействительная сессия")
)

type Service struct {
	User  UserService
	Post  PostService
	Group GroupService
	Auth  AuthService
	Stats StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config) *Service {
	return &Service{
		User:  NewUserService(rep.User),
		Post:  NewPostService(rep.Post, rep.Group, rep.User, cfg),
		Group: NewGroupService(rep.Group),
		Auth:  NewAuthService(rep.User, cfg),
		Stats: NewStatsService(rep.Stats),
	}
}
