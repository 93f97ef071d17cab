// Package leaderboard keeps the persisted score ledger. Lines have the form
// name|score|level, sorted by score descending, and only the best three
// entries are retained.
package leaderboard

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// MaxEntries is the number of scores the ledger retains
const MaxEntries = 3

// Entry is one ledger line
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Level int    `json:"level"`
}

// nameCleaner strips the characters that would split a ledger line
var nameCleaner = strings.NewReplacer("|", " ", "\r", " ", "\n", " ")

// String formats the entry as a ledger line. Separators in the name are
// replaced by spaces so the line always parses back.
func (e Entry) String() string {
	return fmt.Sprintf("%s|%d|%d", nameCleaner.Replace(e.Name), e.Score, e.Level)
}

// ParseLine parses a single name|score|level line
func ParseLine(line string) (Entry, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 3 {
		return Entry{}, fmt.Errorf("expected 3 fields, got %d", len(parts))
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return Entry{}, fmt.Errorf("empty name")
	}
	score, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Entry{}, fmt.Errorf("invalid score %q: %w", parts[1], err)
	}
	level, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Entry{}, fmt.Errorf("invalid level %q: %w", parts[2], err)
	}
	if score < 0 || level < 1 {
		return Entry{}, fmt.Errorf("out of range score %d level %d", score, level)
	}
	return Entry{Name: name, Score: score, Level: level}, nil
}

// Parse reads ledger lines from r. Blank lines are ignored and malformed
// lines are skipped with a warning.
func Parse(r io.Reader, logger *zap.Logger) []Entry {
	if logger == nil {
		logger = zap.NewNop()
	}

	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, err := ParseLine(line)
		if err != nil {
			logger.Warn("skipping malformed leaderboard line",
				zap.Int("line", lineNo),
				zap.String("text", line),
				zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		logger.Warn("leaderboard read stopped early", zap.Error(err))
	}
	return entries
}

// Write formats entries one per line
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintln(bw, e.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
