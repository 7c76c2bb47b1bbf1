package repository

import (
	"context"
	"database/sql"

	"squadbuilder/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	GetByUserAndTeam(ctx context.Context, userID string, teamID int64) (*models.Rating, error)
	Aggregate(ctx context.Context, teamID int64) (*float64, int64, error)
	ListComments(ctx context.Context, teamID int64) ([]models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts the rating or, when the (user_id, team_id) pair already
// exists, overwrites its value and comment in place. A single conditional
// write on the unique index, so concurrent double-submission cannot produce
// a duplicate row.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "team_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating_value", "comment", "updated_at"}),
		}).
		Create(rating).Error
}

// GetByUserAndTeam retrieves a user's rating for a specific team.
func (r *ratingRepository) GetByUserAndTeam(ctx context.Context, userID string, teamID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND team_id = ?", userID, teamID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Aggregate computes the mean and count of a team's ratings, fresh from the
// current rows. The average is nil when the team has no ratings yet.
func (r *ratingRepository) Aggregate(ctx context.Context, teamID int64) (*float64, int64, error) {
	var row struct {
		Average sql.NullFloat64
		Total   int64
	}

	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("AVG(rating_value) AS average, COUNT(rating_value) AS total").
		Where("team_id = ?", teamID).
		Scan(&row).Error
	if err != nil {
		return nil, 0, err
	}

	if !row.Average.Valid {
		return nil, row.Total, nil
	}
	return &row.Average.Float64, row.Total, nil
}

// ListComments returns ratings that carry a non-empty comment, newest first.
// Ordering is by explicit sort key, not storage insertion order.
func (r *ratingRepository) ListComments(ctx context.Context, teamID int64) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND comment <> ''", teamID).
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}
