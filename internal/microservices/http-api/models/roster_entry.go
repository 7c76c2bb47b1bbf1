package models

// RosterEntry links a player into a team. Exactly 11 exist per team; the
// unique index keeps a player from appearing twice in the same squad. Display
// order is derived from position at layout time, never stored here.
type RosterEntry struct {
	ID       int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	TeamID   int64 `json:"team_id" gorm:"not null;uniqueIndex:idx_team_player"`
	PlayerID int64 `json:"player_id" gorm:"not null;uniqueIndex:idx_team_player"`

	// Associations
	Player Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
}

func (RosterEntry) TableName() string {
	return "team_rosters"
}
