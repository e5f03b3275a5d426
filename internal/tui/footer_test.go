package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/valvedrill/internal/drill"
)

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{
		session: drill.Session{Remaining: 42 * time.Second, Score: 5, Best: 12},
	}
	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Time 0:42", "Score 5", "Best 12"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
