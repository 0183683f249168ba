package loop

import (
	"bufio"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/kurve/internal/input"
)

// feedKeys writes s to the stream and polls until cond holds.
func feedKeys(t *testing.T, g *Game, stream *input.Stream, w io.Writer, s string, now time.Time, cond func() bool) {
	t.Helper()
	if _, err := io.WriteString(w, s); err != nil {
		t.Fatalf("write: %v", err)
	}
	logger := log.New(io.Discard)
	deadline := time.Now().Add(2 * time.Second)
	for !cond() && time.Now().Before(deadline) {
		processInput(g, stream, now, logger)
		time.Sleep(time.Millisecond)
	}
	if !cond() {
		t.Fatalf("condition not met after writing %q", s)
	}
}

func TestHeldKeySteersAfterNewRound(t *testing.T) {
	g := startTwoPlayerRound(t)
	p1, p2 := g.Players()[0], g.Players()[1]

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	stream := input.StartStream(bufio.NewReader(pr))
	start := time.Now()

	feedKeys(t, g, stream, pw, "a", start, func() bool { return p1.SteerLeft })

	// Player 2 is out, so the next update ends the round and reseeds.
	p2.Dead = true
	updateGame(g, stream, 10*time.Millisecond, log.New(io.Discard))
	if g.Round() != 2 {
		t.Fatalf("round = %d, want 2", g.Round())
	}
	if p1.SteerLeft {
		t.Fatal("reseed should clear steering")
	}

	// The key is still held: its auto-repeat must steer again.
	feedKeys(t, g, stream, pw, "a", start.Add(50*time.Millisecond), func() bool { return p1.SteerLeft })
}
