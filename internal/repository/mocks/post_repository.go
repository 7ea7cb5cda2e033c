package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/necriesa/puso-t-tulong/internal/domain"
)

// PostRepository 是 repository.PostRepository 的 Mock 实现。
type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) Save(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	args := m.Called(ctx, id)
	var post *domain.Post
	if args.Get(0) != nil {
		post = args.Get(0).(*domain.Post)
	}
	return post, args.Error(1)
}

func (m *PostRepository) ListByDate(ctx context.Context, newestFirst bool) ([]domain.Post, error) {
	args := m.Called(ctx, newestFirst)
	var posts []domain.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.Post)
	}
	return posts, args.Error(1)
}

func (m *PostRepository) SaveComment(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *PostRepository) CommentsByPostID(ctx context.Context, postID uint) ([]domain.Comment, error) {
	args := m.Called(ctx, postID)
	var comments []domain.Comment
	if args.Get(0) != nil {
		comments = args.Get(0).([]domain.Comment)
	}
	return comments, args.Error(1)
}
