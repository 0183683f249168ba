package loop

import (
	"time"

	"github.com/tomz197/kurve/internal/object"
)

// tickRound advances an active round by delta and reports whether the round
// ended (and the next one was seeded) during this tick.
//
// Alive and dead counts are taken once, after movement and before this
// tick's deaths. Every death and survival bonus awarded in the tick uses
// that dead count, and the alive count decides whether the round is over.
func tickRound(s *State, delta time.Duration) bool {
	for _, p := range s.Players {
		if p.Enabled && p.Alive() {
			p.Move(delta)
		}
	}

	alive, dead := countPlayers(s.Players)

	checkDeaths(s.Players, dead)

	if alive > 1 {
		return false
	}

	endRound(s, dead)
	return true
}

// endRound pays the survivors and reseeds every enabled player for the next round.
func endRound(s *State, dead int) {
	for _, p := range s.Players {
		if p.Enabled && p.Alive() {
			p.Score += dead
		}
	}
	resetEnabled(s.Players)
	s.Round++
}

// resetEnabled respawns every enabled player with an empty trail.
func resetEnabled(players []*object.Player) {
	for _, p := range players {
		if p.Enabled {
			p.Reset()
		}
	}
}
