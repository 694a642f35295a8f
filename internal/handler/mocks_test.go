package handlers

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"yatube/internal/forms"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/service"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ListPosts(ctx context.Context, rawPage string) (*service.PostPage, error) {
	args := m.Called(ctx, rawPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostPage), args.Error(1)
}

func (m *MockPostService) ListGroupPosts(ctx context.Context, slug, rawPage string) (*models.Group, *service.PostPage, error) {
	args := m.Called(ctx, slug, rawPage)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Group), args.Get(1).(*service.PostPage), args.Error(2)
}

func (m *MockPostService) ListAuthorPosts(ctx context.Context, username, rawPage string) (*models.User, *service.PostPage, error) {
	args := m.Called(ctx, username, rawPage)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*service.PostPage), args.Error(2)
}

func (m *MockPostService) GetPost(ctx context.Context, postID int64) (*models.Post, int, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.Post), args.Int(1), args.Error(2)
}

func (m *MockPostService) CreatePost(ctx context.Context, author *models.User, input forms.PostInput) (*models.Post, error) {
	args := m.Called(ctx, author, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, editor *models.User, postID int64, input forms.PostInput) (*models.Post, error) {
	args := m.Called(ctx, editor, postID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockGroupService) GetGroupByID(ctx context.Context, groupID int64) (*models.Group, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupService) CreateGroup(ctx context.Context, form *forms.GroupForm) (*models.Group, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupService) DeleteGroup(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) IssueSession(user *models.User) (*service.Session, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) ParseSession(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Counts(ctx context.Context) (repository.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.Stats), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) HealthCheck() error {
	args := m.Called()
	return args.Error(0)
}

// fakeRenderer remembers the last page instead of executing templates.
type fakeRenderer struct {
	name   string
	status int
	data   any
	err    error
}

func (f *fakeRenderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	if f.err != nil {
		return f.err
	}
	f.name, f.status, f.data = name, status, data
	w.WriteHeader(status)
	return nil
}
