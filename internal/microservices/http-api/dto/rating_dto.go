package dto

import (
	"time"

	"squadbuilder/internal/microservices/http-api/models"
)

// SubmitRatingRequest creates or replaces the caller's rating for a team.
// Range checking happens in the rating service.
type SubmitRatingRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// RatingResponse mirrors a stored rating back to its author.
type RatingResponse struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToRatingResponse converts a Rating model to RatingResponse DTO.
func FromModelToRatingResponse(rating *models.Rating) *RatingResponse {
	return &RatingResponse{
		Rating:    rating.RatingValue,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}

// AggregateResponse is the on-demand rating summary for a team. The average
// is null when no ratings exist, never zero.
type AggregateResponse struct {
	AverageRating *float64 `json:"average_rating"`
	TotalRatings  int64    `json:"total_ratings"`
}

// CommentResponse is one display comment, attributed to its author.
type CommentResponse struct {
	Username  string    `json:"username"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModelToCommentResponse converts a commented Rating to its display form.
func FromModelToCommentResponse(rating *models.Rating) *CommentResponse {
	return &CommentResponse{
		Username:  rating.User.Username,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt,
	}
}
