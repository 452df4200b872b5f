package views

import (
	"strings"

	"github.com/tgienger/taskdash/internal/clock"
	"github.com/tgienger/taskdash/internal/store"
	"github.com/tgienger/taskdash/internal/ui/keys"
	"github.com/tgienger/taskdash/internal/ui/styles"
)

// StateChanged tells views the task collection changed and derived data
// must be recomputed
type StateChanged struct {
	Revision uint64
}

// Deps are the shared handles every view is built with
type Deps struct {
	Store       *store.Store
	Clock       clock.Clock
	Styles      *styles.Styles
	Keys        keys.KeyMap
	RecentLimit int
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// helpLine renders key/description pairs as "k desc • k desc"
func helpLine(s *styles.Styles, pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.HelpKey.Render(pairs[i])+" "+s.HelpDesc.Render(pairs[i+1]))
	}
	return s.Help.Render(strings.Join(parts, " • "))
}

// truncate shortens s to width runes, adding an ellipsis when cut
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
