package loop

import (
	"time"

	"github.com/tomz197/kurve/internal/input"
	"github.com/tomz197/kurve/internal/loop/config"
	"github.com/tomz197/kurve/internal/object"
)

// Game is the mode controller. It owns the simulation state, routes key
// events according to the active mode and advances rounds on each tick.
type Game struct {
	state *State
}

// NewGame creates a game in the lobby with the default four seats.
func NewGame(arena object.Arena, rng object.Rand) *Game {
	return NewGameWithSeats(object.DefaultSeats, arena, rng)
}

// NewGameWithSeats creates a game in the lobby with a custom roster.
func NewGameWithSeats(seats []object.Seat, arena object.Arena, rng object.Rand) *Game {
	return &Game{state: NewState(seats, arena, rng)}
}

// Mode returns the active mode.
func (g *Game) Mode() Mode {
	return g.state.Mode
}

// Players returns the roster. Callers must not mutate it.
func (g *Game) Players() []*object.Player {
	return g.state.Players
}

// EnabledCount returns how many players opted in while in the lobby.
func (g *Game) EnabledCount() int {
	return g.state.EnabledCount
}

// Round returns the number of rounds started since the lobby was left.
func (g *Game) Round() int {
	return g.state.Round
}

// Arena returns the arena dimensions.
func (g *Game) Arena() object.Arena {
	return g.state.Arena
}

// HandleEvent applies a key event to the active mode. Unknown keys are ignored.
func (g *Game) HandleEvent(ev input.Event) {
	switch g.state.Mode {
	case ModeLobby:
		if ev.Type == input.KeyUp {
			g.lobbyKeyUp(ev.Key)
		}
	case ModeRound:
		switch ev.Type {
		case input.KeyDown:
			g.steer(ev.Key, true)
		case input.KeyUp:
			g.steer(ev.Key, false)
			if ev.Key == input.KeyCancel {
				g.abortRound()
			}
		}
	}
}

// Update advances the simulation by delta. Only rounds move; the lobby is static.
func (g *Game) Update(delta time.Duration) {
	if g.state.Mode == ModeRound {
		tickRound(g.state, delta)
	}
}

// lobbyKeyUp enables the player bound to key, starts a round on confirm when
// enough players are in, and clears all opt-ins on cancel.
func (g *Game) lobbyKeyUp(key input.Key) {
	s := g.state

	s.EnabledCount = 0
	for _, p := range s.Players {
		if key == p.Controls.Left || key == p.Controls.Right {
			p.Enabled = true
		}
		if p.Enabled {
			s.EnabledCount++
		}
	}

	switch key {
	case input.KeyConfirm:
		if s.EnabledCount >= config.MinPlayersToStart {
			g.startRound()
		}
	case input.KeyCancel:
		for _, p := range s.Players {
			p.Enabled = false
		}
		s.EnabledCount = 0
	}
}

func (g *Game) startRound() {
	g.state.Mode = ModeRound
	g.state.Round = 1
	resetEnabled(g.state.Players)
}

// steer sets the key state of every enabled, living player bound to key.
func (g *Game) steer(key input.Key, down bool) {
	for _, p := range g.state.Players {
		if !p.Enabled || p.Dead {
			continue
		}
		if key == p.Controls.Left {
			p.SteerLeft = down
		}
		if key == p.Controls.Right {
			p.SteerRight = down
		}
	}
}

// abortRound returns to the lobby, dropping all opt-ins and scores.
func (g *Game) abortRound() {
	s := g.state
	s.Mode = ModeLobby
	for _, p := range s.Players {
		p.Enabled = false
		p.Score = 0
	}
	s.EnabledCount = 0
	s.Round = 0
}
