package loop

import (
	"github.com/tomz197/kurve/internal/object"
)

// Mode is the active phase of the game.
type Mode int

const (
	ModeLobby Mode = iota // Players opt in with their keys
	ModeRound             // Active round
)

func (m Mode) String() string {
	switch m {
	case ModeLobby:
		return "lobby"
	case ModeRound:
		return "round"
	default:
		return "unknown"
	}
}

// State holds everything the simulation mutates. It is owned by a single
// Game and only touched through it.
type State struct {
	Mode    Mode
	Arena   object.Arena
	Players []*object.Player // Fixed roster, created once

	EnabledCount int // Lobby: players currently opted in
	Round        int // Rounds started since the last lobby
}

// NewState creates a lobby with one disabled player per seat.
func NewState(seats []object.Seat, arena object.Arena, rng object.Rand) *State {
	return &State{
		Mode:    ModeLobby,
		Arena:   arena,
		Players: object.NewRoster(seats, arena, rng),
	}
}

// countPlayers counts enabled players that are alive and dead.
func countPlayers(players []*object.Player) (alive, dead int) {
	for _, p := range players {
		if !p.Enabled {
			continue
		}
		if p.Dead {
			dead++
		} else {
			alive++
		}
	}
	return alive, dead
}
