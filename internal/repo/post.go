package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rupaladventures/basecamp/internal/domain"
)

// PostRepo defines the persistence operations for authored posts.
type PostRepo interface {
	// List returns the posts matching f, newest first.
	List(ctx context.Context, f domain.PostFilter) ([]domain.Post, error)

	// GetByID retrieves one post. Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error)

	// Create inserts p as given; the caller assigns ID and timestamps.
	Create(ctx context.Context, p domain.Post) (domain.Post, error)

	// Update overwrites the editable fields and updated_at of p.
	// Returns domain.ErrNotFound if no post with that ID exists.
	Update(ctx context.Context, p domain.Post) (domain.Post, error)

	// Delete removes a post. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of stored posts.
	Count(ctx context.Context) (int64, error)
}

// sqlitePostRepo is the sqlite implementation of PostRepo.
type sqlitePostRepo struct {
	db *sql.DB
}

// NewPostRepo constructs a PostRepo over an open sqlite database.
func NewPostRepo(db *sql.DB) PostRepo {
	return &sqlitePostRepo{db: db}
}

const postColumns = `id, title, content, type, category, location, duration, difficulty,
	price, images, author, is_published, created_at, updated_at`

func (r *sqlitePostRepo) List(ctx context.Context, f domain.PostFilter) ([]domain.Post, error) {
	var (
		conds []string
		args  []any
	)
	if f.Author != "" {
		conds = append(conds, "author = ?")
		args = append(args, f.Author)
	}
	if f.PublishedOnly {
		conds = append(conds, "is_published = 1")
	}

	q := `SELECT ` + postColumns + ` FROM posts`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("repo.PostRepo.List: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PostRepo.List: scan: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PostRepo.List: rows: %w", err)
	}
	return posts, nil
}

func (r *sqlitePostRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts WHERE id = ?`

	p, err := scanPost(r.db.QueryRowContext(ctx, q, id.String()))
	if err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.GetByID: %w", err)
	}
	return p, nil
}

func (r *sqlitePostRepo) Create(ctx context.Context, p domain.Post) (domain.Post, error) {
	const q = `
		INSERT INTO posts (id, title, content, type, category, location, duration, difficulty,
		                   price, images, author, is_published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	images, err := encodeImages(p.Images)
	if err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.Create: %w", err)
	}

	_, err = r.db.ExecContext(ctx, q,
		p.ID.String(), p.Title, p.Content, string(p.Type), p.Category, p.Location,
		p.Duration, p.Difficulty, p.Price, images, p.Author, p.IsPublished,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.Create: %w", err)
	}
	return r.GetByID(ctx, p.ID)
}

func (r *sqlitePostRepo) Update(ctx context.Context, p domain.Post) (domain.Post, error) {
	const q = `
		UPDATE posts
		SET title        = ?,
		    content      = ?,
		    type         = ?,
		    category     = ?,
		    location     = ?,
		    duration     = ?,
		    difficulty   = ?,
		    price        = ?,
		    images       = ?,
		    is_published = ?,
		    updated_at   = ?
		WHERE id = ?`

	images, err := encodeImages(p.Images)
	if err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.Update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, q,
		p.Title, p.Content, string(p.Type), p.Category, p.Location, p.Duration,
		p.Difficulty, p.Price, images, p.IsPublished, formatTime(p.UpdatedAt), p.ID.String())
	if err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.Update: rows affected: %w", err)
	} else if n == 0 {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.Update: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, p.ID)
}

func (r *sqlitePostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("repo.PostRepo.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repo.PostRepo.Delete: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repo.PostRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *sqlitePostRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.PostRepo.Count: %w", err)
	}
	return n, nil
}

// scanPost maps one posts row. sqlite keeps ids and timestamps as text and
// images as a JSON array.
func scanPost(s scanner) (domain.Post, error) {
	var (
		p                    domain.Post
		id, typ, images      string
		createdAt, updatedAt string
	)
	err := s.Scan(&id, &p.Title, &p.Content, &typ, &p.Category, &p.Location, &p.Duration,
		&p.Difficulty, &p.Price, &images, &p.Author, &p.IsPublished, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, domain.ErrNotFound
		}
		return domain.Post{}, err
	}

	if p.ID, err = uuid.Parse(id); err != nil {
		return domain.Post{}, fmt.Errorf("parse id %q: %w", id, err)
	}
	p.Type = domain.PostType(typ)
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return domain.Post{}, fmt.Errorf("decode images: %w", err)
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return domain.Post{}, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return domain.Post{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return p, nil
}

func encodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("encode images: %w", err)
	}
	return string(b), nil
}

// timeLayout is fixed width so text ordering in ORDER BY is chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
