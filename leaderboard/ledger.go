package leaderboard

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Ledger holds the top scores in memory and writes through to a Store.
// A nil store keeps the ledger in memory only. It is safe for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	entries []Entry
	store   Store
	logger  *zap.Logger
}

// NewLedger creates an in-memory ledger seeded with entries
func NewLedger(entries []Entry) *Ledger {
	l := &Ledger{logger: zap.NewNop()}
	l.entries = rank(entries)
	return l
}

// Open loads the ledger from store. Load failures are logged and the
// ledger starts empty; the error is never returned.
func Open(store Store, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Ledger{store: store, logger: logger.Named("leaderboard")}
	if store == nil {
		return l
	}

	entries, err := store.Load()
	if err != nil {
		l.logger.Warn("leaderboard unavailable, starting empty", zap.Error(err))
		return l
	}
	l.entries = rank(entries)
	l.logger.Debug("leaderboard loaded", zap.Int("entries", len(l.entries)))
	return l
}

// Entries returns the retained entries, best first
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Qualifies reports whether score would enter the ledger
func (l *Ledger) Qualifies(score int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.qualifies(score)
}

func (l *Ledger) qualifies(score int) bool {
	if len(l.entries) < MaxEntries {
		return true
	}
	return score > l.entries[len(l.entries)-1].Score
}

// Record inserts entry and persists the ledger. It returns true when the
// entry made the top list. Persistence failures are logged only.
func (l *Ledger) Record(entry Entry) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.qualifies(entry.Score) {
		return false
	}
	l.entries = rank(append(l.entries, entry))

	if l.store != nil {
		if err := l.store.Save(l.entries); err != nil {
			l.logger.Warn("failed to save leaderboard", zap.Error(err))
		}
	}
	l.logger.Info("score recorded",
		zap.String("name", entry.Name),
		zap.Int("score", entry.Score),
		zap.Int("level", entry.Level))
	return true
}

// Close releases the underlying store
func (l *Ledger) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}

// rank sorts by score descending, keeping earlier entries ahead on ties,
// and truncates to MaxEntries
func rank(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}
