package forum

import (
	"context"
	"fmt"
	"time"

	"fitness-tracker/backend/internal/domain/user"
	"fitness-tracker/backend/internal/markdown"
	"fitness-tracker/backend/internal/paging"
	"fitness-tracker/backend/internal/validation"

	"go.uber.org/zap"
)

type Store interface {
	Create(ctx context.Context, p Post) (*Post, error)
	Get(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context, offset, limit int) ([]Post, error)
	Count(ctx context.Context) (int, error)
	Vote(ctx context.Context, id string, delta int) (*Post, error)
}

// Authors resolves the poster's profile.
type Authors interface {
	Get(ctx context.Context, email string) (*user.User, error)
}

type Service struct {
	store   Store
	authors Authors
	log     *zap.Logger
	now     func() time.Time
}

func NewService(store Store, authors Authors, log *zap.Logger) *Service {
	return &Service{store: store, authors: authors, log: log, now: time.Now}
}

func (s *Service) Create(ctx context.Context, authorEmail string, in CreateInput) (*Post, error) {
	in.Trim()
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	author, err := s.authors.Get(ctx, authorEmail)
	if err != nil {
		if user.IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoAuthor, authorEmail)
		}
		return nil, err
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	p := Post{
		Title:       in.Title,
		Content:     in.Content,
		Tags:        tags,
		Image:       in.Image,
		VoteCount:   0,
		AuthorName:  author.Name,
		AuthorEmail: author.Email,
		AuthorImage: author.PhotoURL,
		AuthorRole:  author.Role,
		CreatedAt:   s.now().UTC(),
	}
	return s.store.Create(ctx, p)
}

// List returns one page of posts. Pages past the end are empty, not errors.
func (s *Service) List(ctx context.Context, page paging.Page) (*Page, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}

	posts := []Post{}
	if off := page.Offset(); off >= 0 && off < total {
		posts, err = s.store.List(ctx, off, page.Size)
		if err != nil {
			return nil, err
		}
	}

	return &Page{
		Posts:       posts,
		TotalPages:  page.TotalPages(total),
		CurrentPage: page.Number,
		Total:       total,
	}, nil
}

// Get returns the post with its content rendered to HTML.
func (s *Service) Get(ctx context.Context, id string) (*Post, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	html, err := markdown.ToHTML(p.Content)
	if err != nil {
		s.log.Warn("forum content render failed", zap.String("post_id", id), zap.Error(err))
		return p, nil
	}
	p.ContentHTML = html
	return p, nil
}

func (s *Service) Vote(ctx context.Context, id string, in VoteInput) (*Post, error) {
	if !in.Valid() {
		return nil, fmt.Errorf("%w: vote must be 1 or -1", ErrBadRequest)
	}
	return s.store.Vote(ctx, id, in.Vote)
}
