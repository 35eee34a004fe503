package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// AddToShelf places a book on one of the caller's shelves. Shelving a
// finished book carries the page count as progress; the other shelves
// start at zero.
func (c *Client) AddToShelf(ctx context.Context, bookID string, shelf models.Shelf, progress int) error {
	if !shelf.Valid() {
		return fmt.Errorf("unknown shelf %q", shelf)
	}
	req := map[string]any{
		"bookId":   bookID,
		"shelf":    shelf,
		"progress": progress,
	}
	return c.do(ctx, http.MethodPost, "/self", req, nil)
}

// MyLibrary returns the caller's shelves.
func (c *Client) MyLibrary(ctx context.Context) (models.Library, error) {
	var lib models.Library
	if err := c.do(ctx, http.MethodGet, "/self/me", nil, &lib); err != nil {
		return models.Library{}, err
	}
	return lib, nil
}
