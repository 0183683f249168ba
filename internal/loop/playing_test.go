package loop

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tomz197/kurve/internal/object"
	"github.com/tomz197/kurve/internal/physics"
)

func pt(x, y float64) physics.Point {
	return physics.Point{X: x, Y: y}
}

func trailOf(points ...physics.Point) []object.TrailPoint {
	trail := make([]object.TrailPoint, len(points))
	for i, p := range points {
		trail[i] = object.TrailPoint{Point: p}
	}
	return trail
}

func newTestState(enabled int) *State {
	s := NewState(object.DefaultSeats, object.DefaultArena(), rand.New(rand.NewPCG(5, 6)))
	for i := 0; i < enabled; i++ {
		s.Players[i].Enabled = true
		s.Players[i].Reset()
	}
	s.Mode = ModeRound
	s.Round = 1
	return s
}

func TestCountPlayers(t *testing.T) {
	s := newTestState(3)
	s.Players[1].Dead = true
	s.Players[3].Dead = true // Disabled, not counted

	alive, dead := countPlayers(s.Players)
	if alive != 2 || dead != 1 {
		t.Fatalf("countPlayers = (%d, %d), want (2, 1)", alive, dead)
	}
}

func TestCheckDeathsSimultaneousDeathsShareBonus(t *testing.T) {
	s := newTestState(3)
	wall, a, b := s.Players[0], s.Players[1], s.Players[2]

	wall.Dead = true
	wall.Trail = trailOf(pt(200, 0), pt(200, 400))

	a.X, a.Y = 210, 100
	a.Trail = trailOf(pt(190, 100), pt(210, 100))
	b.X, b.Y = 210, 200
	b.Trail = trailOf(pt(190, 200), pt(210, 200))

	checkDeaths(s.Players, 1)

	if !a.Dead || !b.Dead {
		t.Fatalf("a.Dead=%v b.Dead=%v, want both dead", a.Dead, b.Dead)
	}
	if a.Score != 1 || b.Score != 1 {
		t.Fatalf("scores a=%d b=%d, want 1 1", a.Score, b.Score)
	}
	if wall.Score != 0 {
		t.Fatalf("wall score = %d, want 0", wall.Score)
	}
}

func TestCheckDeathsScoresOncePerPlayer(t *testing.T) {
	s := newTestState(3)
	p, q, r := s.Players[0], s.Players[1], s.Players[2]

	q.Dead = true
	q.Trail = trailOf(pt(100, 0), pt(100, 300))
	r.Dead = true
	r.Trail = trailOf(pt(120, 0), pt(120, 300))

	p.X, p.Y = 150, 150
	p.Trail = trailOf(pt(50, 150), pt(150, 150)) // Crosses both

	checkDeaths(s.Players, 2)
	if !p.Dead || p.Score != 2 {
		t.Fatalf("dead=%v score=%d, want true 2", p.Dead, p.Score)
	}
}

func TestCheckDeathsDeadTrailsStayLethal(t *testing.T) {
	s := newTestState(2)
	p, q := s.Players[0], s.Players[1]

	q.Dead = true
	q.Trail = trailOf(pt(100, 0), pt(100, 300))

	p.X, p.Y = 150, 150
	p.Trail = trailOf(pt(50, 150), pt(150, 150))

	checkDeaths(s.Players, 1)
	if !p.Dead {
		t.Fatal("crossing a dead player's trail should kill")
	}
	if q.Score != 0 {
		t.Fatal("already dead player must not score again")
	}
}

func TestCheckDeathsIgnoresDisabledTrails(t *testing.T) {
	s := newTestState(2)
	p := s.Players[0]
	ghost := s.Players[3] // Disabled
	ghost.Trail = trailOf(pt(100, 0), pt(100, 300))

	p.X, p.Y = 150, 150
	p.Trail = trailOf(pt(50, 150), pt(150, 150))

	checkDeaths(s.Players, 0)
	if p.Dead {
		t.Fatal("disabled player's trail must not kill")
	}
}

func TestCheckDeathsOutOfBounds(t *testing.T) {
	s := newTestState(2)
	p := s.Players[0]
	p.X = s.Arena.PlayableWidth() + 5

	checkDeaths(s.Players, 0)
	if !p.Dead {
		t.Fatal("leaving the playable area should kill")
	}
}

func TestTickRoundScriptedCollision(t *testing.T) {
	s := newTestState(2)
	mover, wall := s.Players[0], s.Players[1]

	wall.X, wall.Y, wall.Heading = 400, 300, 0
	wall.Trail = trailOf(pt(200, 100), pt(200, 300), pt(400, 300))

	// The newest trail point is 9.9 units behind the mover, so the next
	// 10ms step lays a segment across the wall.
	mover.X, mover.Y, mover.Heading = 199.5, 200, 90
	mover.Trail = trailOf(pt(180, 200), pt(189.6, 200))

	if ended := tickRound(s, 10*time.Millisecond); ended {
		t.Fatal("round must not end in the tick of the first death")
	}
	if !mover.Dead || mover.Score != 0 {
		t.Fatalf("mover dead=%v score=%d, want true 0", mover.Dead, mover.Score)
	}

	if ended := tickRound(s, 10*time.Millisecond); !ended {
		t.Fatal("round should end once one player is left")
	}
	if wall.Score != 1 {
		t.Fatalf("survivor score = %d, want 1", wall.Score)
	}
	for _, p := range []*object.Player{mover, wall} {
		if p.Dead || len(p.Trail) != 0 || !s.Arena.Contains(p.Position()) {
			t.Fatalf("%s not reset for the next round", p.Name)
		}
	}
	if s.Round != 2 {
		t.Fatalf("round = %d, want 2", s.Round)
	}
}

func TestTickRoundAllDeadResets(t *testing.T) {
	s := newTestState(2)
	a, b := s.Players[0], s.Players[1]
	a.Dead, b.Dead = true, true
	a.Score, b.Score = 3, 1

	if ended := tickRound(s, 10*time.Millisecond); !ended {
		t.Fatal("round with no survivors should end")
	}
	if a.Score != 3 || b.Score != 1 {
		t.Fatalf("scores changed without survivors: %d %d", a.Score, b.Score)
	}
	if a.Dead || b.Dead {
		t.Fatal("players should be alive after reset")
	}
}

func TestTickRoundScoresNeverDecrease(t *testing.T) {
	s := newTestState(4)
	prev := make([]int, len(s.Players))

	for i := 0; i < 3000; i++ {
		// Keep everybody turning so rounds end by self and cross collisions.
		for j, p := range s.Players {
			p.SteerLeft = j%2 == 0
			p.SteerRight = j%2 == 1
		}
		tickRound(s, 33*time.Millisecond)
		for j, p := range s.Players {
			if p.Score < prev[j] {
				t.Fatalf("tick %d: %s score went from %d to %d", i, p.Name, prev[j], p.Score)
			}
			prev[j] = p.Score
		}
	}
	if s.Round == 1 {
		t.Fatal("expected at least one round to finish")
	}
}
