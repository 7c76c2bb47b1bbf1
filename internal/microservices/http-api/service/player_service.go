package service

import (
	"context"

	"squadbuilder/internal/microservices/http-api/models"
	"squadbuilder/internal/microservices/http-api/repository"
)

type PlayerService interface {
	List(ctx context.Context) ([]models.Player, error)
	GetByID(ctx context.Context, id int64) (*models.Player, error)
	Search(ctx context.Context, query string) ([]models.Player, error)
}

type playerService struct {
	playerRepo repository.PlayerRepository
	cache      *repository.CatalogCache
}

// NewPlayerService wraps the catalog with an optional Redis cache; pass a nil
// cache to serve straight from Postgres.
func NewPlayerService(playerRepo repository.PlayerRepository, cache *repository.CatalogCache) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		cache:      cache,
	}
}

// List returns the whole catalog, most expensive first. Catalog rows are
// immutable, so the cached copy is as good as the database's.
func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	if players, ok := s.cache.Get(ctx); ok {
		return players, nil
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, players)
	return players, nil
}

func (s *playerService) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	return s.playerRepo.GetByID(ctx, id)
}

func (s *playerService) Search(ctx context.Context, query string) ([]models.Player, error) {
	return s.playerRepo.SearchByName(ctx, query)
}
