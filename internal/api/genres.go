package api

import (
	"context"
	"net/http"

	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// GenreInput is the payload for creating or updating a genre.
type GenreInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListGenres returns the genre vocabulary.
func (c *Client) ListGenres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := c.do(ctx, http.MethodGet, "/admin/genres", nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// CreateGenre adds a genre to the vocabulary.
func (c *Client) CreateGenre(ctx context.Context, in GenreInput) error {
	return c.do(ctx, http.MethodPost, "/admin/genres", in, nil)
}

// UpdateGenre renames or re-describes a genre.
func (c *Client) UpdateGenre(ctx context.Context, id string, in GenreInput) error {
	return c.do(ctx, http.MethodPut, "/admin/genres/"+id, in, nil)
}

// DeleteGenre removes a genre.
func (c *Client) DeleteGenre(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/genres/"+id, nil, nil)
}
