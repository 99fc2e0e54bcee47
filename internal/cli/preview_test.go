package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/ringstack/pkg/pipeline"
	"github.com/matzehuels/ringstack/pkg/raster"
	"github.com/matzehuels/ringstack/pkg/resonator"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testPreviewModel() previewModel {
	runner := pipeline.NewRunner(nil, nil, nil)
	return newPreviewModel(context.Background(), runner, pipeline.Options{Seed: 5, Count: 3, MaxSize: 60})
}

func TestPreviewModelGenerates(t *testing.T) {
	m := testPreviewModel()

	msg := m.Init()()
	frame, ok := msg.(previewFrameMsg)
	if !ok {
		t.Fatalf("Init command returned %T, want previewFrameMsg", msg)
	}
	if frame.err != nil {
		t.Fatalf("generate: %v", frame.err)
	}
	if frame.frame.seed != 5 {
		t.Errorf("seed = %d, want 5", frame.frame.seed)
	}

	next, _ := m.Update(frame)
	m = next.(previewModel)
	if m.busy {
		t.Error("model still busy after a frame arrived")
	}
	if m.frame == nil || m.frame.canvas == nil {
		t.Fatal("frame not stored")
	}
	if !strings.Contains(m.View(), "seed 5") {
		t.Error("view should show the seed")
	}
}

func TestPreviewModelKeys(t *testing.T) {
	m := testPreviewModel()
	m.busy = false

	next, cmd := m.Update(keyMsg("r"))
	m = next.(previewModel)
	if m.opts.Seed != 6 || !m.busy || cmd == nil {
		t.Errorf("after r: seed=%d busy=%v cmd=%v", m.opts.Seed, m.busy, cmd != nil)
	}

	// Ignored while a frame is being generated.
	next, cmd = m.Update(keyMsg("r"))
	m = next.(previewModel)
	if m.opts.Seed != 6 || cmd != nil {
		t.Errorf("r while busy changed seed to %d", m.opts.Seed)
	}

	m.busy = false
	next, _ = m.Update(keyMsg("b"))
	m = next.(previewModel)
	if m.opts.Seed != 5 {
		t.Errorf("after b: seed = %d, want 5", m.opts.Seed)
	}

	_, cmd = m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPreviewModelShowsErrors(t *testing.T) {
	m := testPreviewModel()

	next, _ := m.Update(previewFrameMsg{err: errors.New("boom")})
	m = next.(previewModel)
	if !strings.Contains(m.View(), "boom") {
		t.Error("view should show the error")
	}
}

func TestPreviewModelWindowSize(t *testing.T) {
	m := testPreviewModel()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if got := next.(previewModel).cols; got != 96 {
		t.Errorf("cols = %d, want 96", got)
	}
	next, _ = m.Update(tea.WindowSizeMsg{Width: 4, Height: 40})
	if got := next.(previewModel).cols; got != 16 {
		t.Errorf("cols = %d, want the minimum 16", got)
	}
}

func TestAsciiCanvas(t *testing.T) {
	stack := resonator.NewStack(resonator.Spec{Size: 20, FrameWidth: 2, GapSize: 4, Side: resonator.Top})
	c, err := raster.Rasterize(stack, 20)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}

	out := asciiCanvas(c, 20)
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10 (two pixel rows per line)", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 20 {
			t.Errorf("line %d has %d glyphs, want 20", i, n)
		}
	}
	// The ring interior is empty.
	if r := []rune(lines[5])[10]; r != ' ' {
		t.Errorf("center glyph = %q, want blank", r)
	}
	// The bottom frame is solid.
	if r := []rune(lines[9])[10]; r != '█' {
		t.Errorf("bottom frame glyph = %q, want full block", r)
	}

	if asciiCanvas(nil, 10) != "" {
		t.Error("nil canvas should draw nothing")
	}
}

func TestAsciiCanvasDownsamples(t *testing.T) {
	c := raster.NewCanvas(128)
	out := asciiCanvas(c, 32)
	lines := strings.Split(out, "\n")
	if len(lines) != 16 || len([]rune(lines[0])) != 32 {
		t.Errorf("got %d lines of %d glyphs, want 16 of 32", len(lines), len([]rune(lines[0])))
	}
	if strings.Trim(out, " \n") != "" {
		t.Error("empty canvas should draw blanks only")
	}
}
