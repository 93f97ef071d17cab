// Package gamestate tracks run statistics: named counters and flags such as
// "enemies_defeated" or "boss_defeated". A Stats value is safe for
// concurrent use so a server can aggregate many sessions into one.
package gamestate

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Well-known counter and flag names
const (
	EnemiesDefeated = "enemies_defeated"
	FloorsCleared   = "floors_cleared"
	GoldEarned      = "gold_earned"
	XPEarned        = "xp_earned"
	RoundsFought    = "rounds_fought"
	LevelsGained    = "levels_gained"
	ItemsLooted     = "items_looted"
	ItemsDiscarded  = "items_discarded"
	Runs            = "runs"
	Deaths          = "deaths"
	Victories       = "victories"

	FlagBossDefeated = "boss_defeated"
)

// Stats holds counters and flags for one run or many
type Stats struct {
	mu sync.RWMutex

	Counters map[string]int  `json:"counters"`
	Flags    map[string]bool `json:"flags"`
}

// New creates empty stats
func New() *Stats {
	return &Stats{
		Counters: make(map[string]int),
		Flags:    make(map[string]bool),
	}
}

// Counter returns the value of a counter (0 if not set)
func (s *Stats) Counter(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Counters[name]
}

// Add adds delta to a counter and returns the new value
func (s *Stats) Add(name string, delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Counters[name] += delta
	return s.Counters[name]
}

// Flag returns the value of a flag (false if not set)
func (s *Stats) Flag(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Flags[name]
}

// SetFlag sets a flag
func (s *Stats) SetFlag(name string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Flags[name] = value
}

// Merge adds other's counters into s and ORs its flags
func (s *Stats) Merge(other *Stats) {
	if other == nil || other == s {
		return
	}
	snap := other.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range snap.Counters {
		s.Counters[k] += v
	}
	for k, v := range snap.Flags {
		if v {
			s.Flags[k] = true
		}
	}
}

// Clone creates a deep copy
func (s *Stats) Clone() *Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clone := New()
	for k, v := range s.Counters {
		clone.Counters[k] = v
	}
	for k, v := range s.Flags {
		clone.Flags[k] = v
	}
	return clone
}

// Save writes the stats to a file
func (s *Stats) Save(path string) error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to serialize stats: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return nil
}

// Load reads stats from a file
func Load(path string) (*Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats file: %w", err)
	}

	s := New()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse stats: %w", err)
	}
	if s.Counters == nil {
		s.Counters = make(map[string]int)
	}
	if s.Flags == nil {
		s.Flags = make(map[string]bool)
	}
	return s, nil
}

// Debug returns the counters sorted by name, for logs
func (s *Stats) Debug() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.Counters))
	for k := range s.Counters {
		names = append(names, k)
	}
	sort.Strings(names)

	out := "Stats{"
	for i, k := range names {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%d", k, s.Counters[k])
	}
	return out + "}"
}
