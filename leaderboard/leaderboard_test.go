package leaderboard

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseSkipsMalformedLines(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	input := strings.Join([]string{
		"alice|120|4",
		"garbage",
		"",
		"bob|abc|2",
		"carol|80|3",
		"|5|1",
	}, "\n")

	entries := Parse(strings.NewReader(input), zap.New(core))

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d: %v", len(entries), entries)
	}
	if entries[0] != (Entry{Name: "alice", Score: 120, Level: 4}) {
		t.Errorf("Unexpected first entry %+v", entries[0])
	}
	if entries[1].Name != "carol" {
		t.Errorf("Expected carol, got %s", entries[1].Name)
	}
	if logs.FilterMessage("skipping malformed leaderboard line").Len() != 3 {
		t.Errorf("Expected 3 warnings, got %d", logs.Len())
	}
}

func TestEntryString(t *testing.T) {
	e := Entry{Name: "dana", Score: 42, Level: 2}
	if e.String() != "dana|42|2" {
		t.Errorf("Expected dana|42|2, got %s", e.String())
	}
	parsed, err := ParseLine(e.String())
	if err != nil || parsed != e {
		t.Errorf("Expected %+v, got %+v (%v)", e, parsed, err)
	}
}

func TestNameSeparatorsSurviveReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.txt")
	ledger := Open(NewFileStore(path, nil), nil)
	if !ledger.Record(Entry{Name: "Ada|Lovelace\nII", Score: 50, Level: 2}) {
		t.Fatal("Expected the score to be recorded")
	}

	reloaded := Open(NewFileStore(path, nil), nil).Entries()
	want := []Entry{{Name: "Ada Lovelace II", Score: 50, Level: 2}}
	if !reflect.DeepEqual(reloaded, want) {
		t.Errorf("Expected %v after reload, got %v", want, reloaded)
	}
}

func TestLedgerKeepsTopThree(t *testing.T) {
	l := NewLedger([]Entry{
		{"a", 10, 1},
		{"b", 50, 2},
		{"c", 30, 1},
		{"d", 40, 2},
	})

	got := l.Entries()
	if len(got) != MaxEntries {
		t.Fatalf("Expected %d entries, got %d", MaxEntries, len(got))
	}
	want := []string{"b", "d", "c"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("rank %d: expected %s, got %s", i+1, name, got[i].Name)
		}
	}

	if l.Qualifies(30) {
		t.Error("Expected a tie with the lowest score not to qualify")
	}
	if l.Record(Entry{"e", 20, 1}) {
		t.Error("Expected low score to be rejected")
	}
	if !l.Record(Entry{"f", 45, 3}) {
		t.Error("Expected 45 to qualify")
	}
	got = l.Entries()
	if got[1].Name != "f" || got[2].Name != "d" {
		t.Errorf("Unexpected order after record: %v", got)
	}
}

func TestLedgerQualifiesWhenNotFull(t *testing.T) {
	l := NewLedger(nil)
	if !l.Qualifies(0) {
		t.Error("Expected any score to qualify on an empty ledger")
	}
	l.Record(Entry{"a", 0, 1})
	if len(l.Entries()) != 1 {
		t.Errorf("Expected 1 entry, got %d", len(l.Entries()))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.txt")
	store := NewFileStore(path, nil)

	l := Open(store, nil)
	if len(l.Entries()) != 0 {
		t.Fatal("Expected missing file to load as empty")
	}
	l.Record(Entry{"alice", 90, 3})
	l.Record(Entry{"bob", 120, 4})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "bob|120|4\nalice|90|3\n" {
		t.Errorf("Unexpected file contents %q", string(data))
	}

	reopened := Open(NewFileStore(path, nil), nil)
	if got := reopened.Entries(); len(got) != 2 || got[0].Name != "bob" {
		t.Errorf("Unexpected reloaded entries %v", got)
	}
}

type failingStore struct{ saves int }

func (s *failingStore) Load() ([]Entry, error) { return nil, errors.New("disk on fire") }
func (s *failingStore) Save([]Entry) error {
	s.saves++
	return errors.New("disk on fire")
}
func (s *failingStore) Close() error { return nil }

func TestOpenDegradesGracefully(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := &failingStore{}
	l := Open(store, zap.New(core))

	if len(l.Entries()) != 0 {
		t.Error("Expected empty ledger when load fails")
	}
	if !l.Record(Entry{"alice", 10, 1}) {
		t.Error("Expected record to succeed in memory")
	}
	if store.saves != 1 {
		t.Errorf("Expected 1 save attempt, got %d", store.saves)
	}
	if logs.FilterMessage("leaderboard unavailable, starting empty").Len() != 1 {
		t.Error("Expected load warning")
	}
	if logs.FilterMessage("failed to save leaderboard").Len() != 1 {
		t.Error("Expected save warning")
	}
}
