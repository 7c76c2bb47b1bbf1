// Package pricing derives the fantasy cost of a player from their match
// rating and on-field role. Costs are expressed in millions and always land
// inside [MinCost, MaxCost].
package pricing

import (
	"math"
	"strconv"
)

const (
	// MinCost is the floor cost, also used for players with no rating data.
	MinCost = 40
	// MaxCost caps the most expensive players.
	MaxCost = 150
)

// Markups per role. Attacking players are worth more in fantasy play.
const (
	forwardMarkup    = 1.15
	midfielderMarkup = 1.05
)

// PlayerCost converts a rating string (typical domain "6.0".."9.0") and a
// position into an integer cost. An empty or unparseable rating degrades to
// MinCost rather than failing; the function never errors.
func PlayerCost(position, rating string) int {
	if rating == "" {
		return MinCost
	}

	r, err := strconv.ParseFloat(rating, 64)
	if err != nil {
		return MinCost
	}

	// Rescale the rating onto a cost band anchored at the floor.
	cost := math.Round((r-5.5)*25 + 40)

	switch position {
	case "Attacker", "Forward":
		cost = math.Round(cost * forwardMarkup)
	case "Midfielder":
		cost = math.Round(cost * midfielderMarkup)
	}

	if cost < MinCost {
		return MinCost
	}
	if cost > MaxCost {
		return MaxCost
	}
	return int(cost)
}
