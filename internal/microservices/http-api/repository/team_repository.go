package repository

import (
	"context"
	"time"

	"squadbuilder/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// TeamSummary is a team row joined with its creator and aggregate rating,
// the shape the browsing endpoints render. AvgRating is nil for unrated
// teams, never zero.
type TeamSummary struct {
	ID        int64     `json:"id"`
	TeamName  string    `json:"team_name"`
	TeamType  string    `json:"team_type"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	TotalCost *int      `json:"total_cost,omitempty"`
	Formation string    `json:"formation"`
	CreatedAt time.Time `json:"created_at"`
	AvgRating *float64  `json:"avg_rating"`
	Ratings   int64     `json:"num_ratings"`
}

// TeamRepository persists teams and their rosters. Creation and deletion are
// multi-row writes and run inside a single transaction each.
type TeamRepository interface {
	CreateWithRoster(ctx context.Context, team *models.Team, playerIDs []int64) error
	GetByID(ctx context.Context, id int64) (*models.Team, error)
	GetRoster(ctx context.Context, teamID int64) ([]models.Player, error)
	ListByUser(ctx context.Context, userID string) ([]TeamSummary, error)
	ListAll(ctx context.Context) ([]TeamSummary, error)
	TopRated(ctx context.Context, limit int) ([]TeamSummary, error)
	DeleteCascade(ctx context.Context, teamID int64) error
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// CreateWithRoster inserts the team and its roster rows as one unit. If any
// insert fails the transaction rolls back and no partial team is visible.
func (r *teamRepository) CreateWithRoster(ctx context.Context, team *models.Team, playerIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		entries := make([]models.RosterEntry, 0, len(playerIDs))
		for _, pid := range playerIDs {
			entries = append(entries, models.RosterEntry{TeamID: team.ID, PlayerID: pid})
		}
		return tx.Create(&entries).Error
	})
}

func (r *teamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Preload("User").First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// GetRoster returns the team's players in catalog order. Display order is the
// formation package's business, not storage's.
func (r *teamRepository) GetRoster(ctx context.Context, teamID int64) ([]models.Player, error) {
	var players []models.Player
	err := r.db.WithContext(ctx).
		Joins("JOIN team_rosters ON team_rosters.player_id = players.id").
		Where("team_rosters.team_id = ?", teamID).
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

const teamSummarySelect = `user_teams.id, user_teams.team_name, user_teams.team_type,
	user_teams.user_id, users.username, user_teams.total_cost, user_teams.formation,
	user_teams.created_at, AVG(team_ratings.rating_value) AS avg_rating,
	COUNT(team_ratings.rating_value) AS ratings`

func (r *teamRepository) summaryQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Team{}).
		Select(teamSummarySelect).
		Joins("JOIN users ON users.id = user_teams.user_id").
		Joins("LEFT JOIN team_ratings ON team_ratings.team_id = user_teams.id").
		Group("user_teams.id, users.username")
}

// ListByUser returns a user's teams, newest first.
func (r *teamRepository) ListByUser(ctx context.Context, userID string) ([]TeamSummary, error) {
	var teams []TeamSummary
	err := r.summaryQuery(ctx).
		Where("user_teams.user_id = ?", userID).
		Order("user_teams.created_at DESC").
		Scan(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// ListAll returns every team for the explore view, newest first.
func (r *teamRepository) ListAll(ctx context.Context) ([]TeamSummary, error) {
	var teams []TeamSummary
	err := r.summaryQuery(ctx).
		Order("user_teams.created_at DESC").
		Scan(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// TopRated returns the best-rated teams. Unrated teams sort last.
func (r *teamRepository) TopRated(ctx context.Context, limit int) ([]TeamSummary, error) {
	var teams []TeamSummary
	err := r.summaryQuery(ctx).
		Order("avg_rating DESC NULLS LAST").
		Limit(limit).
		Scan(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// DeleteCascade removes a team and everything hanging off it. Deletion order
// is strict: ratings, then roster rows, then the team itself, all in one
// transaction, so a concurrent reader never observes a dangling child row.
func (r *teamRepository) DeleteCascade(ctx context.Context, teamID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", teamID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", teamID).Delete(&models.RosterEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Team{}, teamID).Error
	})
}
