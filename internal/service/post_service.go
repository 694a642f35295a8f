package service

import (
	"context"
	"fmt"

	"yatube/internal/config"
	"yatube/internal/forms"
	"yatube/internal/logging"
	"yatube/internal/metrics"
	"yatube/internal/models"
	"yatube/internal/paginator"
	"yatube/internal/repository"
)

// PostPage is one page of a post listing.
type PostPage struct {
	Posts []models.Post
	Page  paginator.Page
}

type PostService interface {
	ListPosts(ctx context.Context, rawPage string) (*PostPage, error)
	ListGroupPosts(ctx context.Context, slug, rawPage string) (*models.Group, *PostPage, error)
	ListAuthorPosts(ctx context.Context, username, rawPage string) (*models.User, *PostPage, error)
	GetPost(ctx context.Context, postID int64) (*models.Post, int, error)
	CreatePost(ctx context.Context, author *models.User, input forms.PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, editor *models.User, postID int64, input forms.PostInput) (*models.Post, error)
}

type postService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	perPage   int
}

func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository, userRepo repository.UserRepository, cfg *config.Config) PostService {
	return &postService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		perPage:   cfg.PostsPerPage,
	}
}

// page counts the filtered posts and loads the requested page; out of range
// page numbers land on the last page.
func (p *postService) page(ctx context.Context, filter repository.PostFilter, rawPage string) (*PostPage, error) {
	count, err := p.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := paginator.New(count, p.perPage).GetPage(rawPage)

	posts, err := p.postRepo.List(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	return &PostPage{Posts: posts, Page: page}, nil
}

func (p *postService) ListPosts(ctx context.Context, rawPage string) (*PostPage, error) {
	return p.page(ctx, repository.PostFilter{}, rawPage)
}

func (p *postService) ListGroupPosts(ctx context.Context, slug, rawPage string) (*models.Group, *PostPage, error) {
	group, err := p.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	page, err := p.page(ctx, repository.PostFilter{GroupID: &group.ID}, rawPage)
	if err != nil {
		return nil, nil, err
	}

	return group, page, nil
}

// ListAuthorPosts returns the author with a page of their posts;
// page.Page.Count is the author's total.
func (p *postService) ListAuthorPosts(ctx context.Context, username, rawPage string) (*models.User, *PostPage, error) {
	author, err := p.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	page, err := p.page(ctx, repository.PostFilter{AuthorID: &author.ID}, rawPage)
	if err != nil {
		return nil, nil, err
	}

	return author, page, nil
}

// GetPost returns the post and the number of posts its author has written.
func (p *postService) GetPost(ctx context.Context, postID int64) (*models.Post, int, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, 0, err
	}

	if !post.HasAuthor() {
		return post, 0, nil
	}

	count, err := p.postRepo.Count(ctx, repository.PostFilter{AuthorID: &post.AuthorID})
	if err != nil {
		return nil, 0, err
	}

	return post, count, nil
}

func (p *postService) CreatePost(ctx context.Context, author *models.User, input forms.PostInput) (*models.Post, error) {
	if author == nil || author.ID == 0 {
		return nil, fmt.Errorf("создание поста без автора: %w", ErrInvalidSession)
	}

	post := &models.Post{
		Text:     input.Text,
		AuthorID: author.ID,
		GroupID:  input.GroupID,
		Author:   *author,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	metrics.PostsCreated.Inc()
	logging.Ctx(ctx).Info().
		Int64("post_id", post.ID).
		Str("author", author.Username).
		Msg("пост создан")

	return post, nil
}

// UpdatePost rewrites text and group of a post owned by editor. The stored
// post is returned untouched together with ErrNotAuthor when editor is
// someone else.
func (p *postService) UpdatePost(ctx context.Context, editor *models.User, postID int64, input forms.PostInput) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if editor == nil || !post.HasAuthor() || post.AuthorID != editor.ID {
		metrics.PostEditsDenied.Inc()
		return post, ErrNotAuthor
	}

	post.Text = input.Text
	post.GroupID = input.GroupID
	if post.Group != nil && (input.GroupID == nil || post.Group.ID != *input.GroupID) {
		post.Group = nil
	}

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	metrics.PostsUpdated.Inc()
	logging.Ctx(ctx).Info().
		Int64("post_id", post.ID).
		Str("author", editor.Username).
		Msg("пост отредактирован")

	return post, nil
}
