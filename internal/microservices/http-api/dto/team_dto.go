package dto

import (
	"time"

	"squadbuilder/internal/formation"
	"squadbuilder/internal/microservices/http-api/models"
)

// CreateTeamRequest is the submission payload for a new squad. Field presence
// and roster shape are checked by the team service so rejections surface as
// typed outcomes, not binding errors.
type CreateTeamRequest struct {
	TeamName  string  `json:"team_name"`
	TeamType  string  `json:"team_type"`
	Formation string  `json:"formation"`
	PlayerIDs []int64 `json:"player_ids"`
}

// TeamResponse is the created/fetched team without roster details.
type TeamResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	TeamName  string    `json:"team_name"`
	TeamType  string    `json:"team_type"`
	TotalCost *int      `json:"total_cost,omitempty"`
	Formation string    `json:"formation"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModelToTeamResponse converts a Team model to TeamResponse DTO.
func FromModelToTeamResponse(team *models.Team) *TeamResponse {
	return &TeamResponse{
		ID:        team.ID,
		UserID:    team.UserID,
		Username:  team.User.Username,
		TeamName:  team.TeamName,
		TeamType:  team.TeamType,
		TotalCost: team.TotalCost,
		Formation: team.Formation,
		CreatedAt: team.CreatedAt,
	}
}

// TeamViewResponse is the full render payload for one team: the lineup placed
// on the pitch, the live aggregate score, comments, and the viewer's own
// rating when they have one.
type TeamViewResponse struct {
	Team          TeamResponse             `json:"team"`
	Lineup        []formation.PlacedPlayer `json:"lineup"`
	AverageRating *float64                 `json:"average_rating"`
	TotalRatings  int64                    `json:"total_ratings"`
	Comments      []CommentResponse        `json:"comments"`
	ViewerRating  *int                     `json:"viewer_rating,omitempty"`
}
