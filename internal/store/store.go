// Package store handles leaderboard persistence in a flat text file.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	// Capacity is the number of entries the leaderboard keeps.
	Capacity = 10
	// MaxNameLength bounds a staged player name, in runes.
	MaxNameLength = 14
	// DefaultName is used for scores submitted without a staged name.
	DefaultName = "Unknown"

	fieldSeparator = ","
	// maxRecordLength bounds a single line, in bytes. Longer lines are malformed.
	maxRecordLength = 4096
	// maxQuotedText bounds the text kept in a LineError for an over-long line.
	maxQuotedText = 32
)

var (
	// ErrMalformedRecord marks a leaderboard line that could not be parsed.
	ErrMalformedRecord = errors.New("malformed leaderboard record")
	// ErrLoadFailed is returned when saving a board whose file was never read.
	ErrLoadFailed = errors.New("leaderboard was not loaded")
)

// Entry is one ranked score.
type Entry struct {
	Name  string
	Score int
}

// LineError describes a skipped record.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e LineError) Unwrap() error {
	return e.Err
}

// Option configures Open.
type Option func(*Leaderboard)

// WithStrict makes a malformed record fail the whole load instead of being skipped.
func WithStrict() Option {
	return func(l *Leaderboard) {
		l.strict = true
	}
}

// Leaderboard is the ranked top scores backed by a file.
// It is not safe for concurrent use, and assumes a single writing process.
type Leaderboard struct {
	path    string
	strict  bool
	entries []Entry
	staged  string
	skipped []LineError
	loadErr error
}

// Open loads the leaderboard at path. A missing file yields an empty board.
// Open always returns a usable Leaderboard: when the file cannot be read or,
// in strict mode, holds a malformed record, the board is empty and the error
// is returned alongside it. Such a board ranks entries in memory but never
// writes them, so the unread file is left as it was.
func Open(path string, opts ...Option) (*Leaderboard, error) {
	l := &Leaderboard{path: path, staged: DefaultName}
	for _, opt := range opts {
		opt(l)
	}
	if path == "" {
		l.loadErr = fmt.Errorf("leaderboard path is empty")
		return l, l.loadErr
	}
	entries, skipped, err := l.load()
	if err != nil {
		l.loadErr = err
		return l, err
	}
	l.entries = entries
	l.skipped = skipped
	l.sortAndTrim()
	return l, nil
}

func (l *Leaderboard) load() ([]Entry, []LineError, error) {
	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to open leaderboard: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only leaderboard.
			_ = cerr
		}
	}()

	var entries []Entry
	var skipped []LineError
	reader := bufio.NewReader(file)
	lineNo := 0
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, nil, fmt.Errorf("failed to read leaderboard: %w", readErr)
		}
		if raw != "" {
			lineNo++
			line := strings.TrimRight(raw, "\r\n")
			if strings.TrimSpace(line) != "" {
				entry, err := parseRecord(line)
				if err != nil {
					lineErr := LineError{Line: lineNo, Text: quotedText(line), Err: err}
					if l.strict {
						return nil, nil, fmt.Errorf("failed to load leaderboard: %w", lineErr)
					}
					skipped = append(skipped, lineErr)
				} else {
					entries = append(entries, entry)
				}
			}
		}
		if readErr == io.EOF {
			break
		}
	}
	return entries, skipped, nil
}

func quotedText(line string) string {
	if len(line) <= maxQuotedText {
		return line
	}
	return line[:maxQuotedText] + "..."
}

func parseRecord(line string) (Entry, error) {
	if len(line) > maxRecordLength {
		return Entry{}, fmt.Errorf("%w: longer than %d bytes", ErrMalformedRecord, maxRecordLength)
	}
	fields := strings.Split(line, fieldSeparator)
	if len(fields) != 2 {
		return Entry{}, fmt.Errorf("%w: expected name,score", ErrMalformedRecord)
	}
	score, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Entry{}, fmt.Errorf("%w: invalid score: %v", ErrMalformedRecord, err)
	}
	return Entry{Name: fields[0], Score: score}, nil
}

// Path returns the backing file path.
func (l *Leaderboard) Path() string {
	return l.path
}

// Skipped returns the malformed records ignored while loading.
func (l *Leaderboard) Skipped() []LineError {
	out := make([]LineError, len(l.skipped))
	copy(out, l.skipped)
	return out
}

// Ranking returns the entries ordered by score, then name.
func (l *Leaderboard) Ranking() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// AddEntry ranks a score for name and rewrites the file.
// The returned ranking reflects the insert even when saving fails. Saving
// fails with ErrLoadFailed when Open could not read the file.
func (l *Leaderboard) AddEntry(name string, score int) ([]Entry, error) {
	l.entries = append(l.entries, Entry{Name: SanitizeName(name), Score: score})
	l.sortAndTrim()
	if err := l.save(); err != nil {
		return l.Ranking(), err
	}
	return l.Ranking(), nil
}

// AddStaged ranks a score under the staged name, then resets it to DefaultName.
func (l *Leaderboard) AddStaged(score int) ([]Entry, error) {
	name := l.staged
	l.staged = DefaultName
	return l.AddEntry(name, score)
}

// StageName keeps a sanitized name for the next AddStaged call.
func (l *Leaderboard) StageName(name string) {
	l.staged = SanitizeName(name)
}

// StagedName returns the name the next AddStaged call will use.
func (l *Leaderboard) StagedName() string {
	return l.staged
}

// SanitizeName truncates name to MaxNameLength runes and strips the field
// separator and line breaks.
func SanitizeName(name string) string {
	runes := []rune(name)
	if len(runes) > MaxNameLength {
		runes = runes[:MaxNameLength]
	}
	return strings.NewReplacer(fieldSeparator, "", "\n", "", "\r", "").Replace(string(runes))
}

func (l *Leaderboard) sortAndTrim() {
	sort.SliceStable(l.entries, func(i, j int) bool {
		a, b := l.entries[i], l.entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	if len(l.entries) > Capacity {
		l.entries = l.entries[:Capacity]
	}
}

// save replaces the file atomically through a temp file in the same directory.
// The replaced file keeps its permissions; a new file gets 0644.
func (l *Leaderboard) save() error {
	if l.loadErr != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, l.loadErr)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(l.path); err == nil {
		mode = info.Mode().Perm()
	}
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create leaderboard dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "leaderboard-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp leaderboard: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, e := range l.entries {
		if _, err := fmt.Fprintf(writer, "%s%s%d\n", e.Name, fieldSeparator, e.Score); err != nil {
			return fmt.Errorf("failed to write leaderboard: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush leaderboard: %w", err)
	}
	if err := tmpFile.Chmod(mode); err != nil {
		return fmt.Errorf("failed to set leaderboard mode: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close leaderboard: %w", err)
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		return fmt.Errorf("failed to replace leaderboard: %w", err)
	}
	return nil
}
