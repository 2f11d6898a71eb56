package handler

import (
	"net/http"

	"github.com/rupaladventures/basecamp/internal/auth"
	"github.com/rupaladventures/basecamp/internal/domain"
)

// GetMe handles GET /me.
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFrom(r.Context())
	if !ok {
		s.respondErr(w, r, domain.ErrUnauthorized, "")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// ListPublishedPosts handles GET /posts.
func (s *Server) ListPublishedPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.Published(r.Context())
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// ListMyPosts handles GET /me/posts.
func (s *Server) ListMyPosts(w http.ResponseWriter, r *http.Request) {
	author, ok := authorFrom(r)
	if !ok {
		s.respondErr(w, r, domain.ErrUnauthorized, "")
		return
	}
	posts, err := s.posts.ByAuthor(r.Context(), author)
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// CreatePost handles POST /posts.
func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	author, ok := authorFrom(r)
	if !ok {
		s.respondErr(w, r, domain.ErrUnauthorized, "")
		return
	}
	var in domain.PostInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	p, err := s.posts.Create(r.Context(), author, in)
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdatePost handles PUT /posts/{id}.
func (s *Server) UpdatePost(w http.ResponseWriter, r *http.Request) {
	author, ok := authorFrom(r)
	if !ok {
		s.respondErr(w, r, domain.ErrUnauthorized, "")
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	var in domain.PostInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	p, err := s.posts.Update(r.Context(), author, id, in)
	if err != nil {
		s.respondErr(w, r, err, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeletePost handles DELETE /posts/{id}.
func (s *Server) DeletePost(w http.ResponseWriter, r *http.Request) {
	author, ok := authorFrom(r)
	if !ok {
		s.respondErr(w, r, domain.ErrUnauthorized, "")
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	if err := s.posts.Delete(r.Context(), author, id); err != nil {
		s.respondErr(w, r, err, "post not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorFrom returns the post author key of the signed-in user.
func authorFrom(r *http.Request) (string, bool) {
	u, ok := auth.UserFrom(r.Context())
	if !ok {
		return "", false
	}
	return u.ID.String(), true
}
