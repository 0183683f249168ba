package loop

import (
	"fmt"
	"strconv"

	"github.com/tomz197/kurve/internal/draw"
	"github.com/tomz197/kurve/internal/loop/config"
	"github.com/tomz197/kurve/internal/object"
)

// drawFrame clears the screen and draws the active mode.
func drawFrame(game *Game, canvas *draw.Canvas, cw *draw.ChunkWriter) error {
	cw.WriteString("\033[H\033[2J")
	canvas.Clear()

	switch game.Mode() {
	case ModeLobby:
		canvas.RenderBorder(cw)
		drawLobby(game, canvas, cw)
	case ModeRound:
		drawArena(game, canvas)
		canvas.Render(cw)
		canvas.RenderBorder(cw)
		drawScoreboard(game, canvas, cw)
	}

	return cw.Flush()
}

// drawArena paints the scoreboard strip and every enabled player's trail.
func drawArena(game *Game, canvas *draw.Canvas) {
	arena := game.Arena()
	canvas.FillRect(arena.PlayableWidth(), 0, config.ScoreboardWidth, arena.Height, draw.ColorPanel)

	for _, p := range game.Players() {
		if p.Enabled {
			drawTrail(p, canvas)
		}
	}
}

// drawTrail draws the solid segments of a trail plus the live segment from
// the newest trail point to the player's position.
func drawTrail(p *object.Player, canvas *draw.Canvas) {
	for i := 1; i < len(p.Trail); i++ {
		if !p.Trail[i].Gap {
			canvas.DrawLine(p.Trail[i-1].Point, p.Trail[i].Point, p.Color)
		}
	}
	if n := len(p.Trail); n > 0 {
		canvas.DrawLine(p.Trail[n-1].Point, p.Position(), p.Color)
	} else {
		canvas.SetFloat(p.X, p.Y, p.Color)
	}
}

// drawScoreboard writes each player's score in the reserved strip.
// Disabled players are shown in grey.
func drawScoreboard(game *Game, canvas *draw.Canvas, cw *draw.ChunkWriter) {
	arena := game.Arena()
	players := game.Players()
	x := arena.Width - config.ScoreboardWidth/2

	for i, p := range players {
		color := draw.ColorGrey
		if p.Enabled {
			color = p.Color
		}
		y := arena.Height/8 + float64(i)*(arena.Height/float64(len(players)))
		col, row := canvas.LogicalToTerminal(x, y)
		cw.WriteCentered(col, row, color, strconv.Itoa(p.Score))
	}
}

// drawLobby draws the title, the start prompt and one column per seat.
func drawLobby(game *Game, canvas *draw.Canvas, cw *draw.ChunkWriter) {
	arena := game.Arena()
	players := game.Players()

	col, row := canvas.LogicalToTerminal(arena.Width/2, arena.Height/3)
	cw.WriteCentered(col, row, draw.ColorTitle, "K U R V E")

	prompt := "Select at least 2 users to play."
	if game.EnabledCount() >= config.MinPlayersToStart {
		prompt = "Press enter to start game"
	}
	col, row = canvas.LogicalToTerminal(arena.Width/2, arena.Height/2)
	cw.WriteCentered(col, row, draw.ColorGrey, prompt)

	seatWidth := arena.Width / float64(len(players))
	for i, p := range players {
		col, row = canvas.LogicalToTerminal(seatWidth/2+seatWidth*float64(i), arena.Height*2/3)
		cw.WriteCentered(col, row, p.Color, p.Name)
		cw.WriteCentered(col, row+2, draw.ColorGrey, fmt.Sprintf("%s and %s", p.Controls.Left, p.Controls.Right))
		if p.Enabled {
			cw.WriteCentered(col, row+4, draw.ColorReady, "Ready")
		} else {
			cw.WriteCentered(col, row+4, draw.ColorGrey, "Press key to play!")
		}
	}

	col, row = canvas.LogicalToTerminal(arena.Width/2, arena.Height)
	cw.WriteCentered(col, row-1, draw.ColorGrey, "Esc clears, Q quits")
}
