package progress

import "github.com/rustyeddy/moneyverse/catalog"

// Quest is a per-user instance of a catalog template, copied at the
// moment it unlocks. Completed is monotonic: it flips true at most once.
type Quest struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	XPReward    int                   `json:"xpReward"`
	Category    catalog.QuestCategory `json:"category"`
	Completed   bool                  `json:"completed"`
}

func instantiate(t catalog.QuestTemplate) Quest {
	return Quest{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		XPReward:    t.XPReward,
		Category:    t.Category,
	}
}

// InitialQuests instantiates the catalog roots for a new user.
func InitialQuests() []Quest {
	var out []Quest
	for _, t := range catalog.Roots() {
		out = append(out, instantiate(t))
	}
	return out
}

// Unlocks computes which templates become available given the current
// quest set: any template not yet present whose prerequisite is absent
// or completed. It is a single pass: completing A unlocks B here, but a
// C behind B only appears after B is itself completed and the pass is
// re-run. Callers re-invoke this after every completion, so chains
// unlock progressively rather than transitively.
func Unlocks(current []Quest, templates []catalog.QuestTemplate) []Quest {
	have := make(map[string]bool, len(current))
	completed := make(map[string]bool, len(current))
	for _, q := range current {
		have[q.ID] = true
		if q.Completed {
			completed[q.ID] = true
		}
	}

	var out []Quest
	for _, t := range templates {
		if have[t.ID] {
			continue
		}
		if t.PrerequisiteID == "" || completed[t.PrerequisiteID] {
			out = append(out, instantiate(t))
		}
	}
	return out
}
