package service

import (
	"errors"
	"fmt"
)

// Business outcomes returned to handlers. Every failure is scoped to the one
// requested operation; nothing here is fatal to the process.
var (
	// Roster validation
	ErrMissingName     = errors.New("team name is required")
	ErrMissingRoster   = errors.New("no players were selected")
	ErrWrongRosterSize = errors.New("a team must have exactly 11 distinct players")
	ErrInvalidTeamType = errors.New("team type must be fantasy or dream")
	ErrUnknownPlayer   = errors.New("player not found")

	// Team lifecycle
	ErrTeamNotFound     = errors.New("team not found")
	ErrPermissionDenied = errors.New("you do not have permission to delete this team")

	// Ratings
	ErrSelfRatingForbidden = errors.New("you cannot rate your own team")
	ErrInvalidRatingValue  = errors.New("rating must be an integer between 1 and 10")
)

// BudgetExceededError rejects a fantasy roster whose summed cost breaks the
// budget. It carries the computed total so the message can surface it.
type BudgetExceededError struct {
	TotalCost int
	Cap       int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("team cost ($%dM) exceeds the $%dM budget", e.TotalCost, e.Cap)
}
