package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/ringstack/pkg/resonator"
)

// captureOutput redirects user-facing output for the duration of the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name                  string
		resonators, requested int
		overlapping           int
		cached                bool
		want, notWant         []string
	}{
		{
			name:       "complete fresh",
			resonators: 4, requested: 4,
			want:    []string{"4 resonators", "fresh"},
			notWant: []string{"requested", "overlapping", "cached"},
		},
		{
			name:       "truncated cached overlap",
			resonators: 3, requested: 6, overlapping: 1, cached: true,
			want: []string{"3 resonators", "6 requested", "1 overlapping", "cached"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureOutput(t)
			printStats(tt.resonators, tt.requested, tt.overlapping, tt.cached)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output %q should not contain %q", out, w)
				}
			}
		})
	}
}

func TestStatusLines(t *testing.T) {
	buf := captureOutput(t)

	printSuccess("wrote %d files", 2)
	printWarning("careful")
	printFile("out.svg")
	printKeyValue("cache", "redis")
	printNextStep("Render it with", "ringstack render stack.json")

	out := buf.String()
	for _, w := range []string{"✓", "wrote 2 files", "careful", "out.svg", "cache", "redis", "ringstack render stack.json"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 5 {
		t.Errorf("got %d lines, want 5", n)
	}
}

func TestStackTable(t *testing.T) {
	stack := resonator.NewStack(
		resonator.Spec{Size: 100, FrameWidth: 8, GapSize: 20, Side: resonator.Top},
		resonator.Spec{Size: 84, FrameWidth: 9, GapSize: 12, Side: resonator.Right},
	)

	out := stackTable(stack, []int{0})
	for _, w := range []string{"Size", "Frame", "Gap", "Side", "100", "84", "top", "right", "overlaps"} {
		if !strings.Contains(out, w) {
			t.Errorf("table missing %q:\n%s", w, out)
		}
	}
	if strings.Count(out, "overlaps") != 1 {
		t.Errorf("only resonator 0 should be flagged:\n%s", out)
	}
}
