package models

import "time"

// Team types.
const (
	TeamTypeFantasy = "fantasy"
	TeamTypeDream   = "dream"
)

// Team is an 11-player squad owned by a user. TotalCost is only set for
// fantasy teams; dream teams carry no budget. Teams are immutable after
// creation except for deletion.
type Team struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	TeamName  string    `json:"team_name" gorm:"not null"`
	TeamType  string    `json:"team_type" gorm:"not null;check:team_type IN ('fantasy','dream')"`
	TotalCost *int      `json:"total_cost,omitempty"`
	Formation string    `json:"formation" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User   User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Roster []RosterEntry `json:"roster,omitempty" gorm:"foreignKey:TeamID"`
}

func (Team) TableName() string {
	return "user_teams"
}
