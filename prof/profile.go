// Package prof collects coarse wall-clock timings of the commit, open and
// verify phases. Intended use is a deferred one-liner at the top of a phase:
//
//	defer prof.Track(time.Now(), "pcs.Commit")
package prof

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Entry is one timing measurement.
type Entry struct {
	Label string
	Dur   time.Duration
}

// Summary aggregates all measurements sharing a label.
type Summary struct {
	Label string
	Count int
	Total time.Duration
	Max   time.Duration
}

var (
	mu     sync.Mutex
	record []Entry
)

// Track logs the duration since start under the given label.
func Track(start time.Time, label string) {
	elapsed := time.Since(start)
	mu.Lock()
	record = append(record, Entry{Label: label, Dur: elapsed})
	mu.Unlock()
}

// SnapshotAndReset returns the collected entries and clears the record.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(record))
	copy(out, record)
	record = nil
	return out
}

// Summarize groups entries by label, sorted by descending total time.
func Summarize(entries []Entry) []Summary {
	byLabel := make(map[string]*Summary)
	for _, e := range entries {
		s, found := byLabel[e.Label]
		if !found {
			s = &Summary{Label: e.Label}
			byLabel[e.Label] = s
		}
		s.Count++
		s.Total += e.Dur
		if e.Dur > s.Max {
			s.Max = e.Dur
		}
	}
	out := make([]Summary, 0, len(byLabel))
	for _, s := range byLabel {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// String renders a summary line fit for log output.
func (s Summary) String() string {
	avg := s.Total / time.Duration(s.Count)
	return fmt.Sprintf("%-16s n=%-4d total=%-12s avg=%-12s max=%s", s.Label, s.Count, s.Total, avg, s.Max)
}
