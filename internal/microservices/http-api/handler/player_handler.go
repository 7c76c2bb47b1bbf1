package handler

import (
	"errors"
	"net/http"
	"strconv"

	"squadbuilder/internal/microservices/http-api/dto"
	"squadbuilder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlayerHandler struct {
	playerService service.PlayerService
}

func NewPlayerHandler(playerService service.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// RegisterRoutes registers the read-only catalog routes.
func (h *PlayerHandler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/players", h.List)
	public.GET("/players/search", h.Search)
	public.GET("/players/:player_id", h.Get)
}

// List returns the whole catalog, most expensive first.
// GET /api/players
func (h *PlayerHandler) List(c *gin.Context) {
	players, err := h.playerService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.PlayerResponse, 0, len(players))
	for i := range players {
		out = append(out, *dto.FromModelToPlayerResponse(&players[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one catalog entry.
// GET /api/players/:player_id
func (h *PlayerHandler) Get(c *gin.Context) {
	playerID, err := strconv.ParseInt(c.Param("player_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player ID"})
		return
	}

	player, err := h.playerService.GetByID(c.Request.Context(), playerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToPlayerResponse(player))
}

// Search matches players by name, club or nationality.
// GET /api/players/search?q=haaland
func (h *PlayerHandler) Search(c *gin.Context) {
	query := c.Query("q")

	players, err := h.playerService.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.PlayerResponse, 0, len(players))
	for i := range players {
		out = append(out, *dto.FromModelToPlayerResponse(&players[i]))
	}
	c.JSON(http.StatusOK, out)
}
