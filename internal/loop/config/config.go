// Package config centralizes all tunable game parameters.
package config

import "time"

// Arena dimensions in logical units. The right-hand strip is reserved for
// the scoreboard and is not part of the playable area.
const (
	ArenaWidth      = 800
	ArenaHeight     = 600
	ScoreboardWidth = 120
)

// Player kinematics
const (
	PlayerSpeed    = 0.07 // Units per millisecond
	PlayerTurnRate = 0.15 // Degrees per millisecond
)

// Trail
const (
	TrailSpacing = 10.0 // Minimum distance between emitted trail points
	GapMinRun    = 5    // Run length that must be exceeded before a gap may open
	GapRollScale = 3.0  // A gap opens when round(U*GapRollScale) == GapRollScale
)

// Roster
const (
	MinPlayersToStart = 2
)

// Tick rate for update and draw.
const (
	TickRate = 30
	TickTime = time.Second / TickRate
)

// Input hold windows. Terminals only report presses (and auto-repeats),
// so a key counts as held until its window runs out.
const (
	FirstHoldWindow  = 550 * time.Millisecond // Covers the OS auto-repeat delay
	RepeatHoldWindow = 120 * time.Millisecond
)

// Rendering
const (
	MaxRenderCols = 200
	MaxRenderRows = 60
)
