package core

import "cpusim/internal/responses"

// Timeline accumulates Gantt entries for one run. The zero value is ready to
// use.
type Timeline struct {
	entries []responses.GanttEntry
	open    bool
	owner   int
}

// Record appends a closed interval. Used by loops that dispatch whole slices.
func (t *Timeline) Record(pid, start, end int) {
	t.Close(start)
	t.entries = append(t.entries, responses.GanttEntry{ProcessId: pid, Start: start, End: end})
}

// Switch hands the CPU to the process at index from now on and reports
// whether a new entry was opened. When that process already owns the open
// entry the entry simply keeps growing.
func (t *Timeline) Switch(index, pid, now int) bool {
	if t.open && t.owner == index {
		return false
	}
	t.Close(now)
	t.entries = append(t.entries, responses.GanttEntry{ProcessId: pid, Start: now, End: now})
	t.open = true
	t.owner = index
	return true
}

// Close ends the open entry at now, if there is one.
func (t *Timeline) Close(now int) {
	if !t.open {
		return
	}
	t.entries[len(t.entries)-1].End = now
	t.open = false
}

// Len returns the number of entries recorded so far.
func (t *Timeline) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the recorded entries.
func (t *Timeline) Entries() []responses.GanttEntry {
	entries := make([]responses.GanttEntry, len(t.entries))
	copy(entries, t.entries)
	return entries
}
