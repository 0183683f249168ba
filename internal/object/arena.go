// Package object holds the arena and the players that move across it.
package object

import (
	"github.com/tomz197/kurve/internal/loop/config"
	"github.com/tomz197/kurve/internal/physics"
)

// Rand is the random source used for trail gaps and spawn positions.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// Arena is the field players move on. A strip of config.ScoreboardWidth
// units on the right edge is reserved for the scoreboard.
type Arena struct {
	Width  float64
	Height float64
}

// DefaultArena returns the arena at the configured logical resolution.
func DefaultArena() Arena {
	return Arena{Width: config.ArenaWidth, Height: config.ArenaHeight}
}

// PlayableWidth is the arena width minus the scoreboard strip.
func (a Arena) PlayableWidth() float64 {
	return a.Width - config.ScoreboardWidth
}

// Contains reports whether p lies within the playable bounds, edges included.
func (a Arena) Contains(p physics.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= a.PlayableWidth() && p.Y <= a.Height
}

// RandomPoint returns a uniformly random point within the playable bounds.
func (a Arena) RandomPoint(rng Rand) physics.Point {
	x := rng.Float64() * a.PlayableWidth()
	y := rng.Float64() * a.Height
	return physics.Point{X: x, Y: y}
}
