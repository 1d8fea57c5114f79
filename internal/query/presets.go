package query

import (
	"fmt"

	"github.com/KaramelBytes/wardbot/internal/render"
)

// Presets are the quick questions offered next to the free-text input. They
// go through Ask like any typed question.
var Presets = []string{
	"average beds",
	"most occupied hospital",
	"hospital with lowest occupancy",
	"province with highest occupancy",
	"next day prediction trend",
}

// Preset returns the 1-based preset question n.
func Preset(n int) (string, error) {
	if n < 1 || n > len(Presets) {
		return "", fmt.Errorf("preset %d out of range (1-%d)", n, len(Presets))
	}
	return Presets[n-1], nil
}

func helpDoc() render.Doc {
	return render.Doc{
		render.L(render.T("🤖 Sorry, I didn't understand your question.")),
		render.L(render.T("Try asking:")),
		render.L(render.T(`- "average beds"`)),
		render.L(render.T(`- "most occupied hospital"`)),
		render.L(render.T(`- "hospital with lowest occupancy"`)),
		render.L(render.T(`- "province with highest occupancy"`)),
		render.L(render.T(`- "next day prediction trend"`)),
		render.L(render.T("- a date (YYYY-MM-DD)")),
	}
}

// HelpText is the fallback reply for questions no rule matches.
func HelpText() string { return helpDoc().String() }
