package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas composes lipgloss-rendered blocks into a cell buffer and turns the
// frame back into a string for Bubble Tea.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

// NewCanvas allocates a canvas of at least 1x1 cells.
func NewCanvas(width, height int) *Canvas {
	width = max(width, 1)
	height = max(height, 1)
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// DrawStringAt writes a multi-line block with its top-left corner at x,y,
// cropping anything that falls outside the canvas.
func (c *Canvas) DrawStringAt(x, y int, content string) {
	if c == nil || content == "" {
		return
	}
	x, y = max(x, 0), max(y, 0)
	for i, line := range splitLines(content) {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Render returns the composed frame.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

// Layer is a block positioned over the base frame.
type Layer struct {
	X, Y    int
	Content string
}

// composeLayers draws base then every non-empty layer on top.
func composeLayers(base string, width, height int, layers ...Layer) string {
	active := layers[:0:0]
	for _, l := range layers {
		if l.Content != "" {
			active = append(active, l)
		}
	}
	if len(active) == 0 {
		return base
	}
	canvas := NewCanvas(width, height)
	canvas.DrawStringAt(0, 0, base)
	for _, l := range active {
		canvas.DrawStringAt(l.X, l.Y, l.Content)
	}
	return canvas.Render()
}

// bottomRightLayer anchors a block inside the region [top, top+regionHeight)
// with a one-cell margin.
func bottomRightLayer(content string, width, top, regionHeight int) Layer {
	if content == "" {
		return Layer{}
	}
	w, h := blockDimensions(content)
	return Layer{
		X:       max(width-w-2, 0),
		Y:       max(top+regionHeight-h-1, top, 0),
		Content: content,
	}
}

func blockDimensions(content string) (int, int) {
	lines := splitLines(content)
	return maxLineWidth(lines), len(lines)
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		widest = max(widest, lipgloss.Width(line))
	}
	return widest
}
