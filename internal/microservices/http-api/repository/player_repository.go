package repository

import (
	"context"
	"fmt"
	"strings"

	"squadbuilder/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlayerRepository reads the player catalog. The API never mutates catalog
// rows; Import exists for the seeder only.
type PlayerRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Player, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	SearchByName(ctx context.Context, query string) ([]models.Player, error)
	Import(ctx context.Context, players []models.Player) (int64, error)
}

type playerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	var p models.Player
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIDs returns the catalog rows for the given ids. Missing ids are simply
// absent from the result; the caller decides whether that is an error.
func (r *playerRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Player, error) {
	var players []models.Player
	if len(ids) == 0 {
		return players, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// List returns the whole catalog, most expensive first.
func (r *playerRepository) List(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := r.db.WithContext(ctx).Order("cost desc").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// SearchByName performs case-insensitive partial match on name, club and
// nationality. Splits query into tokens and requires each token to appear in
// at least one of the fields.
func (r *playerRepository) SearchByName(ctx context.Context, query string) ([]models.Player, error) {
	var players []models.Player
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return players, nil
	}

	clauses := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)*3)
	for _, t := range tokens {
		p := "%" + t + "%"
		clauses = append(clauses, "(name ILIKE ? OR club ILIKE ? OR COALESCE(nationality,'') ILIKE ?)")
		args = append(args, p, p, p)
	}

	where := strings.Join(clauses, " AND ")
	if err := r.db.WithContext(ctx).Where(where, args...).Order("cost desc").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	return players, nil
}

// Import inserts catalog rows, skipping names that already exist, and returns
// the number of rows actually inserted.
func (r *playerRepository) Import(ctx context.Context, players []models.Player) (int64, error) {
	if len(players) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&players)
	if result.Error != nil {
		return 0, fmt.Errorf("import players: %w", result.Error)
	}
	return result.RowsAffected, nil
}
