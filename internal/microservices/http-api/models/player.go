package models

// Player positions as stored in the catalog.
const (
	PositionGoalkeeper = "Goalkeeper"
	PositionDefender   = "Defender"
	PositionMidfielder = "Midfielder"
	PositionForward    = "Forward"
)

// Player is a catalog record. The catalog is populated by the seeder and
// never written by the API; cost is computed once at import time.
type Player struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Position    string `json:"position" gorm:"not null"`
	Club        string `json:"club" gorm:"not null"`
	LeagueID    int64  `json:"league_id" gorm:"not null"`
	Nationality string `json:"nationality"`
	ImageURL    string `json:"image_url"`
	Cost        int    `json:"cost" gorm:"not null;check:cost >= 40 AND cost <= 150"`
}

func (Player) TableName() string {
	return "players"
}
