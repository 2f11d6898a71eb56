package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rupaladventures/basecamp/internal/domain"
	"github.com/rupaladventures/basecamp/internal/repo"
)

// SampleAuthor owns the posts seeded into an empty store.
const SampleAuthor = "sample-user"

// PostService implements business logic for authored posts. Authors may only
// change their own posts.
type PostService struct {
	repo repo.PostRepo
	opts Options
}

// NewPostService constructs a PostService backed by the provided PostRepo.
func NewPostService(r repo.PostRepo, opts Options) *PostService {
	return &PostService{repo: r, opts: opts.withDefaults()}
}

// Published lists the posts shown on the public posts page, newest first.
func (s *PostService) Published(ctx context.Context) ([]domain.Post, error) {
	return s.list(ctx, "service.PostService.Published", domain.PostFilter{PublishedOnly: true})
}

// ByAuthor lists every post of author, drafts included.
func (s *PostService) ByAuthor(ctx context.Context, author string) ([]domain.Post, error) {
	return s.list(ctx, "service.PostService.ByAuthor", domain.PostFilter{Author: author})
}

func (s *PostService) list(ctx context.Context, op string, f domain.PostFilter) ([]domain.Post, error) {
	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	posts, err := s.repo.List(sctx, f)
	if err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	return posts, nil
}

// Create validates and stores a new post owned by author.
func (s *PostService) Create(ctx context.Context, author string, in domain.PostInput) (domain.Post, error) {
	in = normalizePost(in)
	if err := validatePost(in); err != nil {
		return domain.Post{}, err
	}
	now := s.opts.Clock().UTC()
	p := applyPostInput(domain.Post{ID: uuid.New(), Author: author, CreatedAt: now}, in)
	p.UpdatedAt = now

	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	created, err := s.repo.Create(sctx, p)
	if err != nil {
		return domain.Post{}, domain.NewStoreError("service.PostService.Create", err)
	}
	return created, nil
}

// Update replaces the editable fields of one of author's posts.
// Returns domain.ErrForbidden when the post belongs to someone else.
func (s *PostService) Update(ctx context.Context, author string, id uuid.UUID, in domain.PostInput) (domain.Post, error) {
	in = normalizePost(in)
	if err := validatePost(in); err != nil {
		return domain.Post{}, err
	}

	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	existing, err := s.owned(sctx, "service.PostService.Update", author, id)
	if err != nil {
		return domain.Post{}, err
	}
	p := applyPostInput(existing, in)
	p.UpdatedAt = s.opts.Clock().UTC()

	updated, err := s.repo.Update(sctx, p)
	if err != nil {
		return domain.Post{}, domain.NewStoreError("service.PostService.Update", err)
	}
	return updated, nil
}

// Delete removes one of author's posts.
func (s *PostService) Delete(ctx context.Context, author string, id uuid.UUID) error {
	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	if _, err := s.owned(sctx, "service.PostService.Delete", author, id); err != nil {
		return err
	}
	if err := s.repo.Delete(sctx, id); err != nil {
		return domain.NewStoreError("service.PostService.Delete", err)
	}
	return nil
}

func (s *PostService) owned(ctx context.Context, op, author string, id uuid.UUID) (domain.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, domain.NewStoreError(op, err)
	}
	if p.Author != author {
		return domain.Post{}, fmt.Errorf("%s: post %s: %w", op, id, domain.ErrForbidden)
	}
	return p, nil
}

// Seed stores samples when the post store is empty and reports how many
// were written. Seeded posts are a day apart, the first one newest.
func (s *PostService) Seed(ctx context.Context, samples []domain.PostInput) (int, error) {
	sctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	n, err := s.repo.Count(sctx)
	if err != nil {
		return 0, domain.NewStoreError("service.PostService.Seed", err)
	}
	if n > 0 {
		return 0, nil
	}

	now := s.opts.Clock().UTC()
	for i, in := range samples {
		at := now.Add(-time.Duration(i) * 24 * time.Hour)
		p := applyPostInput(domain.Post{ID: uuid.New(), Author: SampleAuthor, CreatedAt: at}, normalizePost(in))
		p.UpdatedAt = at
		if _, err := s.repo.Create(sctx, p); err != nil {
			return i, domain.NewStoreError("service.PostService.Seed", err)
		}
	}
	s.opts.Logger.Info("service: seeded sample posts", "count", len(samples))
	return len(samples), nil
}

func applyPostInput(p domain.Post, in domain.PostInput) domain.Post {
	p.Title = in.Title
	p.Content = in.Content
	p.Type = in.Type
	p.Category = in.Category
	p.Location = in.Location
	p.Duration = in.Duration
	p.Difficulty = in.Difficulty
	p.Price = in.Price
	p.Images = in.Images
	p.IsPublished = in.IsPublished
	return p
}

func normalizePost(in domain.PostInput) domain.PostInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Category = strings.TrimSpace(in.Category)
	in.Location = strings.TrimSpace(in.Location)
	in.Duration = strings.TrimSpace(in.Duration)
	in.Difficulty = strings.TrimSpace(in.Difficulty)
	in.Price = strings.TrimSpace(in.Price)
	images := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	in.Images = images
	return in
}

func validatePost(in domain.PostInput) error {
	verr := &domain.ValidationError{}
	requireFields(verr,
		requiredField{"title", in.Title},
		requiredField{"content", in.Content},
		requiredField{"category", in.Category},
		requiredField{"location", in.Location},
	)
	if !in.Type.Valid() {
		verr.Add("type", "type must be one of expedition, adventure, tour, news, alert")
	}
	return verr.OrNil()
}
