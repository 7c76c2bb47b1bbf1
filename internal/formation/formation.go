// Package formation maps a validated 11-player roster onto on-pitch display
// coordinates. Layouts and the position sort order are plain lookup tables so
// adding a formation or changing display priority needs no logic change.
package formation

import (
	"sort"

	"squadbuilder/internal/microservices/http-api/models"
)

// Default is substituted when a stored formation name is not recognized.
// Unknown names are accepted at creation time; the fallback is purely a
// display concern.
const Default = "4-4-2"

// Coord is one on-pitch slot, as CSS percentage offsets from the top-left of
// the pitch. Slot 0 is the goalkeeper; the rest run defense to attack.
type Coord struct {
	Top  string `json:"top"`
	Left string `json:"left"`
}

// PlacedPlayer is a roster member bound to a pitch slot.
type PlacedPlayer struct {
	Player models.Player `json:"player"`
	Coord
}

var layouts = map[string][11]Coord{
	"4-4-2": {
		{"88%", "50%"}, {"70%", "15%"}, {"70%", "35%"},
		{"70%", "65%"}, {"70%", "85%"}, {"45%", "15%"},
		{"45%", "35%"}, {"45%", "65%"}, {"45%", "85%"},
		{"20%", "35%"}, {"20%", "65%"},
	},
	"4-3-3": {
		{"88%", "50%"}, {"70%", "15%"}, {"70%", "35%"},
		{"70%", "65%"}, {"70%", "85%"}, {"50%", "25%"},
		{"50%", "50%"}, {"50%", "75%"}, {"20%", "20%"},
		{"15%", "50%"}, {"20%", "80%"},
	},
	"3-4-3": {
		{"88%", "50%"}, {"70%", "25%"}, {"70%", "50%"},
		{"70%", "75%"}, {"45%", "15%"}, {"45%", "35%"},
		{"45%", "65%"}, {"45%", "85%"}, {"20%", "20%"},
		{"15%", "50%"}, {"20%", "80%"},
	},
	"5-3-2": {
		{"88%", "50%"}, {"70%", "10%"}, {"70%", "30%"},
		{"70%", "50%"}, {"70%", "70%"}, {"70%", "90%"},
		{"45%", "25%"}, {"45%", "50%"}, {"45%", "75%"},
		{"20%", "35%"}, {"20%", "65%"},
	},
	"4-2-3-1": {
		{"88%", "50%"}, {"75%", "15%"}, {"75%", "35%"},
		{"75%", "65%"}, {"75%", "85%"}, {"55%", "35%"},
		{"55%", "65%"}, {"35%", "20%"}, {"35%", "50%"},
		{"35%", "80%"}, {"15%", "50%"},
	},
	"4-2-4": {
		{"88%", "50%"}, {"70%", "15%"}, {"70%", "35%"},
		{"70%", "65%"}, {"70%", "85%"}, {"50%", "35%"},
		{"50%", "65%"}, {"20%", "15%"}, {"20%", "35%"},
		{"20%", "65%"}, {"20%", "85%"},
	},
}

// positionRank defines the canonical display order. Unknown positions sort
// last. This is the only place roster ordering is defined; roster rows carry
// no order of their own.
var positionRank = map[string]int{
	models.PositionGoalkeeper: 1,
	models.PositionDefender:   2,
	models.PositionMidfielder: 3,
	models.PositionForward:    4,
}

const unknownRank = 5

// Names returns the recognized formation names, sorted.
func Names() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Recognized reports whether name is a known layout.
func Recognized(name string) bool {
	_, ok := layouts[name]
	return ok
}

// Coords returns the 11 slots for a formation, falling back to the default
// layout for unrecognized names.
func Coords(name string) [11]Coord {
	if coords, ok := layouts[name]; ok {
		return coords
	}
	return layouts[Default]
}

// SortRoster orders players goalkeeper first, then defenders, midfielders and
// forwards. The sort is stable so players within a line keep catalog order.
func SortRoster(players []models.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		return rank(players[i].Position) < rank(players[j].Position)
	})
}

// Place sorts the roster into canonical order and zips it against the
// formation's slots. A short roster should not happen for a stored team, but
// is tolerated by truncating to the shorter side.
func Place(name string, players []models.Player) []PlacedPlayer {
	coords := Coords(name)

	roster := make([]models.Player, len(players))
	copy(roster, players)
	SortRoster(roster)

	n := len(roster)
	if n > len(coords) {
		n = len(coords)
	}

	placed := make([]PlacedPlayer, 0, n)
	for i := 0; i < n; i++ {
		placed = append(placed, PlacedPlayer{Player: roster[i], Coord: coords[i]})
	}
	return placed
}

func rank(position string) int {
	if r, ok := positionRank[position]; ok {
		return r
	}
	return unknownRank
}
