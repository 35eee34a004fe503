package api

import (
	"context"
	"net/http"

	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// TutorialInput is the payload for attaching a video tutorial to a book.
// Book holds the book id.
type TutorialInput struct {
	Title      string `json:"title"`
	YouTubeURL string `json:"youtubeUrl"`
	Book       string `json:"book"`
}

// ListTutorials returns every tutorial.
func (c *Client) ListTutorials(ctx context.Context) ([]models.Tutorial, error) {
	var tutorials []models.Tutorial
	if err := c.do(ctx, http.MethodGet, "/tutorial", nil, &tutorials); err != nil {
		return nil, err
	}
	return tutorials, nil
}

// CreateTutorial attaches a tutorial to a book.
func (c *Client) CreateTutorial(ctx context.Context, in TutorialInput) error {
	return c.do(ctx, http.MethodPost, "/tutorial", in, nil)
}

// DeleteTutorial removes a tutorial.
func (c *Client) DeleteTutorial(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tutorial/"+id, nil, nil)
}
