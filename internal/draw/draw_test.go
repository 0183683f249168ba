package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestColorHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorBlue, "#5f5fff"},
		{ColorMagenta, "#ff5fff"},
		{ColorRed, "#ff5f5f"},
		{ColorGreen, "#5fff5f"},
		{Color(9), "#ff0000"},
		{Color(232), "#080808"},
		{Color(255), "#eeeeee"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("Color(%d).Hex() = %s, want %s", tt.c, got, tt.want)
		}
	}
}

func TestCanvasRenderHalfBlocks(t *testing.T) {
	// 1:1 scale: 4 columns, 2 rows => 4 sub-pixel rows.
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(0, 0, ColorRed)   // top half of cell (1,1)
	c.SetFloat(1, 1, ColorGreen) // bottom half of cell (2,1)
	c.SetFloat(2, 2, ColorBlue)  // both halves of cell (3,2)
	c.SetFloat(2, 3, ColorBlue)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()

	for _, want := range []string{
		"\033[1;1H" + ColorRed.Foreground() + string(BlockUpperHalf),
		"\033[1;2H" + ColorGreen.Foreground() + string(BlockLowerHalf),
		"\033[2;3H" + ColorBlue.Foreground() + string(BlockFull),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
	if strings.Contains(out, "\033[2;1H") {
		t.Error("empty cell should not be rendered")
	}
}

func TestCanvasRenderMixedCell(t *testing.T) {
	c := NewScaledCanvas(1, 1, 1, 2)
	c.SetFloat(0, 0, ColorRed)
	c.SetFloat(0, 1, ColorGreen)

	var buf bytes.Buffer
	c.Render(&buf)
	want := ColorRed.Foreground() + ColorGreen.Background() + string(BlockUpperHalf)
	if !strings.Contains(buf.String(), want) {
		t.Fatalf("got %q, want it to contain %q", buf.String(), want)
	}
}

func TestCanvasDrawLineAndClear(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.DrawLine(Point{X: 0, Y: 0}, Point{X: 9, Y: 0}, ColorGrey)
	for x := 0; x < 10; x++ {
		if got := c.pixel(x, 0); got != ColorGrey {
			t.Fatalf("pixel(%d, 0) = %d, want %d", x, got, ColorGrey)
		}
	}

	c.Clear()
	if got := c.pixel(3, 0); got != ColorNone {
		t.Fatalf("after Clear pixel = %d, want none", got)
	}
}

func TestCanvasFillRectAndOutOfBounds(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.FillRect(2, 0, 2, 4, ColorPanel)
	c.SetFloat(-5, 100, ColorRed) // ignored

	for y := 0; y < 4; y++ {
		if got := c.pixel(1, y); got != ColorNone {
			t.Fatalf("pixel(1, %d) = %d, want none", y, got)
		}
		if got := c.pixel(3, y); got != ColorPanel {
			t.Fatalf("pixel(3, %d) = %d, want %d", y, got, ColorPanel)
		}
	}
}

func TestLogicalToTerminal(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	col, row := c.LogicalToTerminal(400, 300)
	if col != 41 || row != 16 {
		t.Fatalf("LogicalToTerminal = (%d, %d), want (41, 16)", col, row)
	}
}

func TestChunkWriterOffsets(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got, want := out.String(), "\033[4;3Hhi"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
