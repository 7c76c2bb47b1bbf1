package models

import "time"

// Rating is one user's score for one team, with an optional comment. The
// unique index on (user_id, team_id) backs the upsert: resubmitting replaces
// the value and comment instead of adding a row.
type Rating struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_team"`
	TeamID      int64     `json:"team_id" gorm:"not null;uniqueIndex:idx_user_team"`
	RatingValue int       `json:"rating_value" gorm:"not null;check:rating_value >= 1 AND rating_value <= 10"`
	Comment     string    `json:"comment" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Team Team `json:"team,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "team_ratings"
}
