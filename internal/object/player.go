package object

import (
	"math"
	"time"

	"github.com/tomz197/kurve/internal/draw"
	"github.com/tomz197/kurve/internal/input"
	"github.com/tomz197/kurve/internal/loop/config"
	"github.com/tomz197/kurve/internal/physics"
)

// TrailPoint is a point of a player's trail. Gap marks the segment leading
// into this point (from the previous one) as a hole: not drawn, not collidable.
type TrailPoint struct {
	physics.Point
	Gap bool
}

// Controls are the two keys bound to a player.
type Controls struct {
	Left  input.Key
	Right input.Key
}

// Player is one competitor: a point moving across the arena and the trail
// it leaves behind.
type Player struct {
	Name     string
	Color    draw.Color
	Controls Controls

	X, Y     float64 // Position
	Heading  float64 // Degrees; 0 points toward +y, steering left increases it
	Speed    float64 // Units per millisecond
	TurnRate float64 // Degrees per millisecond

	Enabled bool // Takes part in the current/next round
	Dead    bool
	Score   int
	Trail   []TrailPoint

	SteerLeft  bool
	SteerRight bool

	runLength int // Trail points laid since the last gap
	arena     Arena
	rng       Rand
}

// NewPlayer creates a disabled player bound to the given keys.
func NewPlayer(name string, color draw.Color, controls Controls, arena Arena, rng Rand) *Player {
	return &Player{
		Name:     name,
		Color:    color,
		Controls: controls,
		Speed:    config.PlayerSpeed,
		TurnRate: config.PlayerTurnRate,
		arena:    arena,
		rng:      rng,
	}
}

// Position returns the player's current location.
func (p *Player) Position() physics.Point {
	return physics.Point{X: p.X, Y: p.Y}
}

// Alive reports whether the player has not died this round.
func (p *Player) Alive() bool {
	return !p.Dead
}

// Move turns and advances the player by delta, then lays a trail point if
// it has travelled far enough from the previous one.
func (p *Player) Move(delta time.Duration) {
	ms := float64(delta) / float64(time.Millisecond)

	if p.SteerLeft {
		p.Heading += p.TurnRate * ms
	}
	if p.SteerRight {
		p.Heading -= p.TurnRate * ms
	}

	rad := p.Heading * math.Pi / 180
	p.X += math.Sin(rad) * p.Speed * ms
	p.Y += math.Cos(rad) * p.Speed * ms

	if n := len(p.Trail); n == 0 || physics.Distance(p.Trail[n-1].Point, p.Position()) > config.TrailSpacing {
		p.layTrailPoint()
	}
}

// layTrailPoint appends the current position to the trail. Once the run since
// the last gap is long enough, each new point opens a gap with probability 1/6.
func (p *Player) layTrailPoint() {
	gap := false
	if p.runLength > config.GapMinRun && math.Round(p.rng.Float64()*config.GapRollScale) == config.GapRollScale {
		gap = true
		p.runLength = 0
	} else {
		p.runLength++
	}
	p.Trail = append(p.Trail, TrailPoint{Point: p.Position(), Gap: gap})
}

// lastSegment returns the segment between the two newest trail points.
// The trail must hold at least two points.
func (p *Player) lastSegment() physics.Segment {
	n := len(p.Trail)
	return physics.Segment{A: p.Trail[n-2].Point, B: p.Trail[n-1].Point}
}

// CollideWith reports whether the player's newest trail segment crosses any
// solid segment of other's trail.
func (p *Player) CollideWith(other *Player) bool {
	if len(p.Trail) < 2 || len(other.Trail) < 2 {
		return false
	}

	last := p.lastSegment()
	for i := 1; i < len(other.Trail); i++ {
		if other.Trail[i].Gap {
			continue
		}
		seg := physics.Segment{A: other.Trail[i-1].Point, B: other.Trail[i].Point}
		if physics.SegmentsIntersect(last, seg) {
			return true
		}
	}
	return false
}

// Suicide reports whether the player has left the playable area or crossed
// its own trail.
func (p *Player) Suicide() bool {
	if !p.arena.Contains(p.Position()) {
		return true
	}

	if len(p.Trail) <= 2 {
		return false
	}

	last := p.lastSegment()
	// The newest segment always touches the one before it; skip both.
	for i := 1; i < len(p.Trail)-2; i++ {
		if p.Trail[i].Gap {
			continue
		}
		seg := physics.Segment{A: p.Trail[i-1].Point, B: p.Trail[i].Point}
		if physics.SegmentsIntersect(last, seg) {
			return true
		}
	}
	return false
}

// Reset clears the trail and respawns the player at a random position and
// heading. Score and enablement are kept.
func (p *Player) Reset() {
	p.Trail = p.Trail[:0]
	p.runLength = 0

	spawn := p.arena.RandomPoint(p.rng)
	p.X, p.Y = spawn.X, spawn.Y
	p.Heading = p.rng.Float64() * 360

	p.Dead = false
	p.SteerLeft = false
	p.SteerRight = false
}
