package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// BookReviews returns the approved reviews for one book.
func (c *Client) BookReviews(ctx context.Context, bookID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.do(ctx, http.MethodGet, "/review/"+bookID, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// SubmitReview posts a review for moderation. New reviews always enter
// the queue as pending.
func (c *Client) SubmitReview(ctx context.Context, bookID string, rating int, text string) error {
	req := map[string]any{
		"bookId": bookID,
		"rating": rating,
		"review": text,
		"status": models.ReviewPending,
	}
	return c.do(ctx, http.MethodPost, "/review", req, nil)
}

// ListReviews returns reviews for moderation, optionally narrowed to one
// status. An empty status returns every review.
func (c *Client) ListReviews(ctx context.Context, status string) ([]models.Review, error) {
	path := "/admin/reviews"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var reviews []models.Review
	if err := c.do(ctx, http.MethodGet, path, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ModerateReview sets a review's moderation status.
func (c *Client) ModerateReview(ctx context.Context, id, status string) error {
	req := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, "/admin/reviews/"+id, req, nil)
}
