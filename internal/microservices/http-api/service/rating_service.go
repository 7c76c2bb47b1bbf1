package service

import (
	"context"
	"errors"
	"strings"

	"squadbuilder/internal/microservices/http-api/dto"
	"squadbuilder/internal/microservices/http-api/models"
	"squadbuilder/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type RatingService interface {
	Submit(ctx context.Context, userID string, teamID int64, rating int, comment string) (*dto.RatingResponse, error)
	GetUserRating(ctx context.Context, userID string, teamID int64) (*dto.RatingResponse, error)
	Aggregate(ctx context.Context, teamID int64) (*dto.AggregateResponse, error)
	ListComments(ctx context.Context, teamID int64) ([]dto.CommentResponse, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	teamRepo   repository.TeamRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, teamRepo repository.TeamRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		teamRepo:   teamRepo,
	}
}

// Submit records the caller's rating for a team, replacing any previous one
// for the same (user, team) pair. Owners may not rate their own teams.
func (s *ratingService) Submit(ctx context.Context, userID string, teamID int64, rating int, comment string) (*dto.RatingResponse, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	// Owners are refused before the value is even looked at; an owner
	// submitting garbage still learns only that self-rating is forbidden.
	if team.UserID == userID {
		return nil, ErrSelfRatingForbidden
	}

	if rating < 1 || rating > 10 {
		return nil, ErrInvalidRatingValue
	}

	entry := &models.Rating{
		UserID:      userID,
		TeamID:      teamID,
		RatingValue: rating,
		Comment:     strings.TrimSpace(comment),
	}
	if err := s.ratingRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	// Reload so an update reflects stored timestamps, not the zero values
	// on the insert candidate.
	stored, err := s.ratingRepo.GetByUserAndTeam(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToRatingResponse(stored), nil
}

// GetUserRating retrieves the caller's own rating for a team.
func (s *ratingService) GetUserRating(ctx context.Context, userID string, teamID int64) (*dto.RatingResponse, error) {
	rating, err := s.ratingRepo.GetByUserAndTeam(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToRatingResponse(rating), nil
}

// Aggregate computes the team's score fresh from current rating rows.
func (s *ratingService) Aggregate(ctx context.Context, teamID int64) (*dto.AggregateResponse, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	avg, count, err := s.ratingRepo.Aggregate(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return &dto.AggregateResponse{AverageRating: avg, TotalRatings: count}, nil
}

// ListComments returns the team's display comments, newest first. Ratings
// submitted without a comment still count toward the aggregate but are not
// listed here.
func (s *ratingService) ListComments(ctx context.Context, teamID int64) ([]dto.CommentResponse, error) {
	ratings, err := s.ratingRepo.ListComments(ctx, teamID)
	if err != nil {
		return nil, err
	}

	comments := make([]dto.CommentResponse, 0, len(ratings))
	for i := range ratings {
		comments = append(comments, *dto.FromModelToCommentResponse(&ratings[i]))
	}
	return comments, nil
}
