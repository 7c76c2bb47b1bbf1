package handler

import (
	"errors"
	"net/http"
	"strconv"

	"squadbuilder/internal/microservices/http-api/dto"
	"squadbuilder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService service.TeamService
}

func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// RegisterRoutes registers team routes. The caller wires auth middleware onto
// the authed group; reads stay public.
func (h *TeamHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/teams", h.Explore)
	public.GET("/teams/top", h.TopRated)
	public.GET("/teams/:team_id", h.Get)

	authed.POST("/teams", h.Create)
	authed.DELETE("/teams/:team_id", h.Delete)
	authed.GET("/my/teams", h.Dashboard)
}

// Create builds a new squad from a submission.
// POST /api/teams
func (h *TeamHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.Create(c.Request.Context(), userID.(string), req)
	if err != nil {
		var budgetErr *service.BudgetExceededError
		switch {
		case errors.Is(err, service.ErrMissingName),
			errors.Is(err, service.ErrMissingRoster),
			errors.Is(err, service.ErrWrongRosterSize),
			errors.Is(err, service.ErrInvalidTeamType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &budgetErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      budgetErr.Error(),
				"total_cost": budgetErr.TotalCost,
				"budget_cap": budgetErr.Cap,
			})
		case errors.Is(err, service.ErrUnknownPlayer):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToTeamResponse(team))
}

// Get renders one team: placed lineup, aggregate score, comments.
// GET /api/teams/:team_id
func (h *TeamHandler) Get(c *gin.Context) {
	teamID, err := strconv.ParseInt(c.Param("team_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
		return
	}

	viewerID := c.GetString("userID")

	view, err := h.teamService.GetView(c.Request.Context(), teamID, viewerID)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

// Delete removes a team the caller owns.
// DELETE /api/teams/:team_id
func (h *TeamHandler) Delete(c *gin.Context) {
	teamID, err := strconv.ParseInt(c.Param("team_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.teamService.Delete(c.Request.Context(), userID.(string), teamID); err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team deleted successfully"})
}

// Dashboard lists the caller's teams, newest first.
// GET /api/my/teams
func (h *TeamHandler) Dashboard(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	teams, err := h.teamService.ListByUser(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, teams)
}

// Explore lists every team for browsing.
// GET /api/teams
func (h *TeamHandler) Explore(c *gin.Context) {
	teams, err := h.teamService.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, teams)
}

// TopRated lists the best-rated teams for the landing page.
// GET /api/teams/top?limit=6
func (h *TeamHandler) TopRated(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	if limit < 1 || limit > 50 {
		limit = 6
	}

	teams, err := h.teamService.TopRated(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, teams)
}
