package service

import (
	"context"
	"errors"
	"strings"

	"squadbuilder/internal/formation"
	"squadbuilder/internal/microservices/http-api/dto"
	"squadbuilder/internal/microservices/http-api/models"
	"squadbuilder/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

const (
	// RosterSize is the fixed number of players in every squad.
	RosterSize = 11
	// BudgetCap is the fantasy budget, in millions. Fixed configuration,
	// not derived.
	BudgetCap = 700
)

type TeamService interface {
	Create(ctx context.Context, userID string, req dto.CreateTeamRequest) (*models.Team, error)
	Delete(ctx context.Context, userID string, teamID int64) error
	GetView(ctx context.Context, teamID int64, viewerID string) (*dto.TeamViewResponse, error)
	ListByUser(ctx context.Context, userID string) ([]repository.TeamSummary, error)
	ListAll(ctx context.Context) ([]repository.TeamSummary, error)
	TopRated(ctx context.Context, limit int) ([]repository.TeamSummary, error)
}

type teamService struct {
	teamRepo   repository.TeamRepository
	playerRepo repository.PlayerRepository
	ratingRepo repository.RatingRepository
}

func NewTeamService(
	teamRepo repository.TeamRepository,
	playerRepo repository.PlayerRepository,
	ratingRepo repository.RatingRepository,
) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		ratingRepo: ratingRepo,
	}
}

// Create validates the submission and persists the team with its 11 roster
// rows as one atomic unit. Checks run in a fixed order and the first failure
// wins; nothing is written on any rejection.
func (s *teamService) Create(ctx context.Context, userID string, req dto.CreateTeamRequest) (*models.Team, error) {
	if strings.TrimSpace(req.TeamName) == "" {
		return nil, ErrMissingName
	}
	if len(req.PlayerIDs) == 0 {
		return nil, ErrMissingRoster
	}

	// Duplicates count once; a duplicate that shrinks the effective set
	// below 11 is itself a rejection.
	playerIDs := dedupe(req.PlayerIDs)
	if len(playerIDs) != RosterSize {
		return nil, ErrWrongRosterSize
	}

	if req.TeamType != models.TeamTypeFantasy && req.TeamType != models.TeamTypeDream {
		return nil, ErrInvalidTeamType
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, err
	}
	if len(players) != RosterSize {
		return nil, ErrUnknownPlayer
	}

	// Dream teams carry no budget; total cost stays unset.
	var totalCost *int
	if req.TeamType == models.TeamTypeFantasy {
		total := 0
		for _, p := range players {
			total += p.Cost
		}
		if total > BudgetCap {
			return nil, &BudgetExceededError{TotalCost: total, Cap: BudgetCap}
		}
		totalCost = &total
	}

	// An unrecognized formation is stored as submitted; the mapper falls
	// back to the default layout at display time.
	team := &models.Team{
		UserID:    userID,
		TeamName:  strings.TrimSpace(req.TeamName),
		TeamType:  req.TeamType,
		TotalCost: totalCost,
		Formation: req.Formation,
	}

	if err := s.teamRepo.CreateWithRoster(ctx, team, playerIDs); err != nil {
		return nil, err
	}
	return team, nil
}

// Delete removes a team with its roster and ratings. Only the owner may
// delete; a mismatch touches no rows.
func (s *teamService) Delete(ctx context.Context, userID string, teamID int64) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	if team.UserID != userID {
		return ErrPermissionDenied
	}

	return s.teamRepo.DeleteCascade(ctx, teamID)
}

// GetView assembles everything a team page renders: the placed lineup, the
// aggregate computed fresh from current ratings, the comment list, and the
// viewer's own rating when viewerID is set.
func (s *teamService) GetView(ctx context.Context, teamID int64, viewerID string) (*dto.TeamViewResponse, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	roster, err := s.teamRepo.GetRoster(ctx, teamID)
	if err != nil {
		return nil, err
	}

	avg, count, err := s.ratingRepo.Aggregate(ctx, teamID)
	if err != nil {
		return nil, err
	}

	comments, err := s.ratingRepo.ListComments(ctx, teamID)
	if err != nil {
		return nil, err
	}
	commentResponses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		commentResponses = append(commentResponses, *dto.FromModelToCommentResponse(&comments[i]))
	}

	view := &dto.TeamViewResponse{
		Team:          *dto.FromModelToTeamResponse(team),
		Lineup:        formation.Place(team.Formation, roster),
		AverageRating: avg,
		TotalRatings:  count,
		Comments:      commentResponses,
	}

	if viewerID != "" {
		own, err := s.ratingRepo.GetByUserAndTeam(ctx, viewerID, teamID)
		switch {
		case err == nil:
			view.ViewerRating = &own.RatingValue
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Viewer has not rated this team; nothing to attach.
		default:
			return nil, err
		}
	}

	return view, nil
}

func (s *teamService) ListByUser(ctx context.Context, userID string) ([]repository.TeamSummary, error) {
	return s.teamRepo.ListByUser(ctx, userID)
}

func (s *teamService) ListAll(ctx context.Context) ([]repository.TeamSummary, error) {
	return s.teamRepo.ListAll(ctx)
}

func (s *teamService) TopRated(ctx context.Context, limit int) ([]repository.TeamSummary, error) {
	return s.teamRepo.TopRated(ctx, limit)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
