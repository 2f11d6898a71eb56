package domain

import (
	"time"

	"github.com/google/uuid"
)

// PostType classifies an authored post.
type PostType string

const (
	PostExpedition PostType = "expedition"
	PostAdventure  PostType = "adventure"
	PostTour       PostType = "tour"
	PostNews       PostType = "news"
	PostAlert      PostType = "alert"
)

// Valid reports whether t is a known post type.
func (t PostType) Valid() bool {
	switch t {
	case PostExpedition, PostAdventure, PostTour, PostNews, PostAlert:
		return true
	}
	return false
}

// Post is a piece of content authored by a signed-in user and listed on the
// public posts page once published.
type Post struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Type        PostType  `json:"type"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Duration    string    `json:"duration,omitempty"`
	Difficulty  string    `json:"difficulty,omitempty"`
	Price       string    `json:"price,omitempty"`
	Images      []string  `json:"images"`
	Author      string    `json:"author"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PostInput holds the author-editable fields of a post.
type PostInput struct {
	Title       string   `json:"title" yaml:"title"`
	Content     string   `json:"content" yaml:"content"`
	Type        PostType `json:"type" yaml:"type"`
	Category    string   `json:"category" yaml:"category"`
	Location    string   `json:"location" yaml:"location"`
	Duration    string   `json:"duration" yaml:"duration"`
	Difficulty  string   `json:"difficulty" yaml:"difficulty"`
	Price       string   `json:"price" yaml:"price"`
	Images      []string `json:"images" yaml:"images"`
	IsPublished bool     `json:"isPublished" yaml:"isPublished"`
}

// PostFilter narrows a post listing. Zero values mean no condition.
type PostFilter struct {
	Author        string
	PublishedOnly bool
}
