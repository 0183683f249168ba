// Package loop runs the game: mode control, round simulation and the
// terminal frame loop that drives them.
package loop

import (
	"bufio"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/kurve/internal/draw"
	"github.com/tomz197/kurve/internal/input"
	"github.com/tomz197/kurve/internal/loop/config"
	"github.com/tomz197/kurve/internal/object"
)

// Publisher receives a snapshot after every frame (e.g. a spectator feed).
type Publisher interface {
	Publish(snap Snapshot)
}

// Options configures Run.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Seed         uint64            // Random seed; 0 picks one from the clock
	Publisher    Publisher         // Optional
	Logger       *log.Logger       // Optional; discards by default
}

// Run starts the main game loop with the standard Input → Update → Draw cycle
// at config.TickRate. It returns when a quit key is pressed or input ends.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	game := NewGame(object.DefaultArena(), rand.New(rand.NewPCG(seed, seed)))
	stream := input.StartStream(r)
	logger.Debug("game created", "seed", seed)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	arena := game.Arena()
	termWidth, termHeight, _ := sizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, arena.Width, arena.Height)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	lastTime := time.Now()

	for {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		if quit := processInput(game, stream, frameStart, logger); quit || stream.Closed() {
			break
		}

		// ===== UPDATE PHASE =====
		updateGame(game, stream, delta, logger)

		updateScreen(sizeFunc, canvas, chunkWriter)

		// ===== DRAW PHASE =====
		if err := drawFrame(game, canvas, chunkWriter); err != nil {
			return err
		}
		if opts.Publisher != nil {
			opts.Publisher.Publish(game.Snapshot())
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TickTime {
			time.Sleep(config.TickTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}

// processInput feeds pending key events to the game. It reports whether
// the quit key was pressed.
func processInput(game *Game, stream *input.Stream, now time.Time, logger *log.Logger) bool {
	for _, ev := range stream.Poll(now) {
		if ev.Key == input.KeyQuit {
			return true
		}

		mode := game.Mode()
		game.HandleEvent(ev)
		if game.Mode() != mode {
			logger.Info("mode changed", "from", mode, "to", game.Mode(), "players", enabledNames(game))
			// Keys held before the switch belong to the previous mode.
			stream.Reset()
		}
	}
	return false
}

// updateGame advances the game by delta. When a round ends the players are
// reseeded with their steering cleared, so held keys are forgotten too and
// their next auto-repeat arrives as a fresh KeyDown.
func updateGame(game *Game, stream *input.Stream, delta time.Duration, logger *log.Logger) {
	round := game.Round()
	game.Update(delta)
	if game.Round() != round {
		logger.Info("round finished", "round", round, "scores", scores(game))
		stream.Reset()
	}
}

// updateScreen checks for terminal resize and updates canvas scaling.
func updateScreen(sizeFunc draw.TermSizeFunc, canvas *draw.Canvas, cw *draw.ChunkWriter) {
	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas.Resize(renderWidth, renderHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	cw.SetOffset(offsetCol, offsetRow)
}

// clampTermSize limits the render area to the max resolution and centers it.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(min(termWidth, config.MaxRenderCols), 1)
	renderHeight = max(min(termHeight, config.MaxRenderRows), 1)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

func enabledNames(game *Game) []string {
	var names []string
	for _, p := range game.Players() {
		if p.Enabled {
			names = append(names, p.Name)
		}
	}
	return names
}

func scores(game *Game) map[string]int {
	out := make(map[string]int)
	for _, p := range game.Players() {
		if p.Enabled {
			out[p.Name] = p.Score
		}
	}
	return out
}
