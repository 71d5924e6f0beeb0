package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event.
type SimLogEntry struct {
	Tick     int
	Actor    string  // "C1", "C2", "camera", or "--" for global events
	Category string  // scene, chicken, path, fade, input
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] C1     chicken   state            idle → alert
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-6s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events. Unlike ThoughtLog (UI ring-buffer),
// SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick distance entries
// are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, actor, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, actor, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Len returns the number of recorded entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

// Since returns entries recorded after the first n.
func (sl *SimLog) Since(n int) []SimLogEntry {
	if n >= len(sl.entries) {
		return nil
	}
	if n < 0 {
		n = 0
	}
	return sl.entries[n:]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries for a specific actor label.
func (sl *SimLog) FilterActor(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// Summary returns a short multi-line digest: scene loads and per-chicken
// state change counts.
func (sl *SimLog) Summary(tick int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== SimLog summary @ T=%d (%d entries) ===\n", tick, len(sl.entries))
	for _, e := range sl.Filter("scene", "load") {
		fmt.Fprintf(&sb, "  T=%03d load %s\n", e.Tick, e.Value)
	}
	counts := map[string]int{}
	var order []string
	for _, e := range sl.Filter("chicken", "state") {
		if _, seen := counts[e.Actor]; !seen {
			order = append(order, e.Actor)
		}
		counts[e.Actor]++
	}
	for _, a := range order {
		fmt.Fprintf(&sb, "  %s: %d state changes\n", a, counts[a])
	}
	return sb.String()
}
