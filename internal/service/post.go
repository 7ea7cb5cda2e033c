package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/necriesa/puso-t-tulong/internal/domain"
	"github.com/necriesa/puso-t-tulong/internal/repository"
)

// PostService 负责帖子和评论的业务逻辑。
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService 创建 PostService 实例。
func NewPostService(postRepo repository.PostRepository) *PostService {
	if postRepo == nil {
		panic("PostRepository cannot be nil for PostService")
	}
	return &PostService{postRepo: postRepo}
}

// CreatePost 以当前用户的用户名为作者持久化一条新帖子。
// author 来自已认证的会话，不是表单字段。
func (s *PostService) CreatePost(ctx context.Context, author, title, body, contactDetails string) (*domain.Post, error) {
	post := &domain.Post{
		Author:         author,
		Title:          title,
		Body:           body,
		ContactDetails: contactDetails,
	}

	if err := s.postRepo.Save(ctx, post); err != nil {
		logrus.WithError(err).WithField("author", author).Error("Database error during post creation")
		return nil, ErrInternalServer
	}

	logrus.WithFields(logrus.Fields{"post_id": post.ID, "author": author}).Info("Post created")
	return post, nil
}

// ListPosts 返回论坛首页的帖子列表，最新的在前。
func (s *PostService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.postRepo.ListByDate(ctx, true)
	if err != nil {
		logrus.WithError(err).Error("Database error listing posts")
		return nil, ErrInternalServer
	}
	return posts, nil
}

// GetPost 返回单条帖子及其评论，评论按创建时间正序。
// 帖子不存在时返回 ErrPostNotFound。
func (s *PostService) GetPost(ctx context.Context, id uint) (*domain.Post, []domain.Comment, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, nil, ErrPostNotFound
		}
		logrus.WithError(err).WithField("post_id", id).Error("Database error finding post")
		return nil, nil, ErrInternalServer
	}

	comments, err := s.postRepo.CommentsByPostID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("post_id", id).Error("Database error listing comments")
		return nil, nil, ErrInternalServer
	}

	return post, comments, nil
}

// AddComment 给指定帖子追加一条评论。
// 先确认帖子存在再写入：post_id 没有真正的外键，这是应用层的完整性检查。
func (s *PostService) AddComment(ctx context.Context, postID uint, author, body string) (*domain.Comment, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		logrus.WithError(err).WithField("post_id", postID).Error("Database error checking post before comment")
		return nil, ErrInternalServer
	}

	comment := &domain.Comment{
		PostID: postID,
		Author: author,
		Body:   body,
	}
	if err := s.postRepo.SaveComment(ctx, comment); err != nil {
		logrus.WithError(err).WithField("post_id", postID).Error("Database error during comment creation")
		return nil, ErrInternalServer
	}

	logrus.WithFields(logrus.Fields{"post_id": postID, "comment_id": comment.ID, "author": author}).Info("Comment created")
	return comment, nil
}
