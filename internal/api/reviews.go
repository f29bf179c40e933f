package api

import (
	"context"
	"fmt"
	"net/http"

	"avaliaccess/internal/domain"
)

// ListReviews returns the reviews of an establishment
func (c *Client) ListReviews(ctx context.Context, establishmentID int64) ([]domain.Review, error) {
	var reviews []domain.Review
	endpoint := fmt.Sprintf("/api/reviews/establishment/%d", establishmentID)
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetAccessibility returns the aggregated accessibility features of an establishment
func (c *Client) GetAccessibility(ctx context.Context, establishmentID int64) (*domain.AccessibilityFeatures, error) {
	var features domain.AccessibilityFeatures
	endpoint := fmt.Sprintf("/api/reviews/establishment/%d/accessibility", establishmentID)
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, nil, &features); err != nil {
		return nil, err
	}
	return &features, nil
}

// CreateReview submits a review. Rating must be within 1..5.
func (c *Client) CreateReview(ctx context.Context, establishmentID int64, req domain.ReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5, got %d", ErrInvalidParams, req.Rating)
	}
	var review domain.Review
	endpoint := fmt.Sprintf("/api/reviews/establishment/%d", establishmentID)
	if err := c.doJSON(ctx, http.MethodPost, endpoint, nil, req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
