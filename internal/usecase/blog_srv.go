package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"travel-booking/internal/api"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/store"
	"travel-booking/pkg/utils"
)

type BlogService interface {
	ListPosts(ctx context.Context) ([]response.BlogPost, error)
	GetPost(ctx context.Context, slug string) (*response.BlogPost, error)
	CreatePost(ctx context.Context, form *request.CreatePostForm, imagePath string) (*response.BlogPost, error)
}

type blogService struct {
	api   *api.Client
	store *store.Store
	log   *zap.Logger
}

func NewBlogService(client *api.Client, st *store.Store, log *zap.Logger) BlogService {
	return &blogService{
		api:   client,
		store: st,
		log:   log.With(zap.String("service", "blog")),
	}
}

func (s *blogService) ListPosts(ctx context.Context) ([]response.BlogPost, error) {
	return s.api.ListPosts(ctx)
}

func (s *blogService) GetPost(ctx context.Context, slug string) (*response.BlogPost, error) {
	return s.api.GetPost(ctx, slug)
}

func (s *blogService) CreatePost(ctx context.Context, form *request.CreatePostForm, imagePath string) (*response.BlogPost, error) {
	if s.store.Token() == "" {
		return nil, api.ErrAuthRequired
	}

	if errs := utils.ValidateStruct(form); len(errs) > 0 {
		return nil, api.NewValidationError("%s", utils.FormatValidationErrors(errs))
	}

	if imagePath == "" {
		return s.api.CreatePost(ctx, form.Title, form.Content, "", nil)
	}

	file, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("open cover image: %w", err)
	}
	defer file.Close()

	return s.api.CreatePost(ctx, form.Title, form.Content, filepath.Base(imagePath), file)
}
