package object

import (
	"github.com/tomz197/kurve/internal/draw"
	"github.com/tomz197/kurve/internal/input"
)

// Seat describes one roster slot: its name, color and key binding.
type Seat struct {
	Name     string
	Color    draw.Color
	Controls Controls
}

// DefaultSeats is the four-player shared-keyboard layout.
var DefaultSeats = []Seat{
	{Name: "Player 1", Color: draw.ColorBlue, Controls: Controls{Left: input.KeyA, Right: input.KeyD}},
	{Name: "Player 2", Color: draw.ColorMagenta, Controls: Controls{Left: input.KeyJ, Right: input.KeyL}},
	{Name: "Player 3", Color: draw.ColorRed, Controls: Controls{Left: input.KeyLeftArrow, Right: input.KeyRightArrow}},
	{Name: "Player 4", Color: draw.ColorGreen, Controls: Controls{Left: input.KeyNum1, Right: input.KeyNum3}},
}

// NewRoster creates one disabled player per seat. The roster lives for the
// whole session; rounds only reset per-player state.
func NewRoster(seats []Seat, arena Arena, rng Rand) []*Player {
	players := make([]*Player, 0, len(seats))
	for _, s := range seats {
		players = append(players, NewPlayer(s.Name, s.Color, s.Controls, arena, rng))
	}
	return players
}
