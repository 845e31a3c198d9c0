package plan_models

import (
	"fmt"
	"strings"
)

// DeltaItem is one proposed correction from the reviewer. Target resolution:
// (Day, Position) when they address an existing activity, otherwise a unique
// substring match of Match against activity descriptions and locations. An
// item that resolves to zero or more than one activity is unresolvable.
type DeltaItem struct {
	Day      int       `json:"day,omitempty"`
	Position int       `json:"position,omitempty"` // 1-based within the day
	Match    string    `json:"match,omitempty"`
	Problem  string    `json:"problem"`
	Remove   bool      `json:"remove,omitempty"`
	Fix      *Activity `json:"fix,omitempty"`
}

type DeltaList struct {
	Items []DeltaItem `json:"items"`
}

func (dl DeltaList) Empty() bool { return len(dl.Items) == 0 }

// Resolve locates the single activity the item targets. The boolean is false
// when the reference is ambiguous or points at nothing.
func (di DeltaItem) Resolve(it *Itinerary) (dayIdx, actIdx int, ok bool) {
	if di.Day > 0 && di.Position > 0 {
		for i := range it.Days {
			if it.Days[i].Day != di.Day {
				continue
			}
			if di.Position > len(it.Days[i].Activities) {
				return 0, 0, false
			}
			idx := di.Position - 1
			if di.Match != "" && !activityMatches(it.Days[i].Activities[idx], di.Match) {
				return 0, 0, false
			}
			return i, idx, true
		}
		return 0, 0, false
	}

	if di.Match == "" {
		return 0, 0, false
	}

	found := 0
	for i := range it.Days {
		for j := range it.Days[i].Activities {
			if activityMatches(it.Days[i].Activities[j], di.Match) {
				found++
				dayIdx, actIdx = i, j
			}
		}
	}
	return dayIdx, actIdx, found == 1
}

func activityMatches(act Activity, match string) bool {
	needle := strings.ToLower(strings.TrimSpace(match))
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(act.Description), needle) ||
		strings.Contains(strings.ToLower(act.Location), needle)
}

// Render produces the textual delta line surfaced to users:
// "<Activity>: <problem> → <fix>".
func (di DeltaItem) Render(it *Itinerary) string {
	label := di.Match
	if dayIdx, actIdx, ok := di.Resolve(it); ok {
		act := it.Days[dayIdx].Activities[actIdx]
		label = act.Description
		if label == "" {
			label = act.Location
		}
	}
	if label == "" {
		label = fmt.Sprintf("day %d #%d", di.Day, di.Position)
	}

	fix := "remove from itinerary"
	if !di.Remove && di.Fix != nil {
		fix = fmt.Sprintf("%s %s–%s", di.Fix.Description, di.Fix.StartTime, di.Fix.EndTime)
		if di.Fix.Description == "" {
			fix = fmt.Sprintf("move to %s–%s", di.Fix.StartTime, di.Fix.EndTime)
		}
	}
	return fmt.Sprintf("%s: %s → %s", label, di.Problem, fix)
}

// RenderLines renders the whole list in reviewer output order.
func (dl DeltaList) RenderLines(it *Itinerary) []string {
	lines := make([]string, 0, len(dl.Items))
	for _, item := range dl.Items {
		lines = append(lines, item.Render(it))
	}
	return lines
}

// ApplyReport accounts for every delta item after an apply pass; nothing is
// silently dropped.
type ApplyReport struct {
	Applied      []DeltaItem `json:"applied"`
	Deferred     []DeltaItem `json:"deferred"`
	Unresolvable []DeltaItem `json:"unresolvable"`
}

func (r ApplyReport) Outstanding() []DeltaItem {
	out := make([]DeltaItem, 0, len(r.Deferred)+len(r.Unresolvable))
	out = append(out, r.Deferred...)
	out = append(out, r.Unresolvable...)
	return out
}
