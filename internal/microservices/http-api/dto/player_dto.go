package dto

import "squadbuilder/internal/microservices/http-api/models"

// PlayerResponse is a catalog entry as rendered in the squad picker.
type PlayerResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	Club        string `json:"club"`
	Nationality string `json:"nationality,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Cost        int    `json:"cost"`
}

// FromModelToPlayerResponse converts a Player model to PlayerResponse DTO.
func FromModelToPlayerResponse(p *models.Player) *PlayerResponse {
	return &PlayerResponse{
		ID:          p.ID,
		Name:        p.Name,
		Position:    p.Position,
		Club:        p.Club,
		Nationality: p.Nationality,
		ImageURL:    p.ImageURL,
		Cost:        p.Cost,
	}
}
