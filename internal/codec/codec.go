// Package codec reads and writes the flat tasks file.
//
// Each task is one line of three fields joined by a semicolon:
//
//	id;description;completed
//
// The id is a base-10 integer, the description is written as-is, and
// completed is "1" for true and "0" for false. On read only "1" counts
// as completed.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"todo/internal/service"
)

const (
	// Delimiter separates the fields of a record.
	Delimiter = ";"

	// CompletedMarker is the completed field value that means true.
	CompletedMarker = "1"

	// pendingMarker is written for tasks that are not completed.
	pendingMarker = "0"

	// maxLineSize bounds a single record while scanning.
	maxLineSize = 1 << 20
)

// ErrCorruptRecord is matched by every RecordError.
var ErrCorruptRecord = errors.New("corrupt record")

// RecordError describes a line that could not be parsed into a task.
type RecordError struct {
	Line   int    // 1-based line number
	Text   string // raw line content
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Is reports whether target is ErrCorruptRecord.
func (e *RecordError) Is(target error) bool {
	return target == ErrCorruptRecord
}

// Options controls decoding behavior.
type Options struct {
	// SkipMalformed drops lines that fail to parse instead of
	// returning a RecordError. Each skipped line is logged as a warning.
	SkipMalformed bool

	// Logger receives warnings for skipped lines. May be nil.
	Logger *log.Logger
}

// Encode writes tasks to w, one record per line, in slice order.
func Encode(w io.Writer, tasks []service.Task) error {
	bw := bufio.NewWriter(w)
	for _, task := range tasks {
		if _, err := bw.WriteString(formatRecord(task)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode parses records from r in order.
// Blank lines are ignored. Any other line that is not exactly three
// fields with a positive integer id yields a RecordError, unless
// opts.SkipMalformed is set.
func Decode(r io.Reader, opts Options) ([]service.Task, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	tasks := make([]service.Task, 0)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		task, err := parseRecord(line, lineNum)
		if err != nil {
			if opts.SkipMalformed {
				if opts.Logger != nil {
					opts.Logger.Warn("skipping malformed record", "line", lineNum, "reason", err.Reason)
				}
				continue
			}
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan tasks: %w", err)
	}
	return tasks, nil
}

func formatRecord(task service.Task) string {
	completed := pendingMarker
	if task.Completed {
		completed = CompletedMarker
	}
	return strconv.Itoa(task.ID) + Delimiter + task.Description + Delimiter + completed
}

func parseRecord(line string, lineNum int) (service.Task, *RecordError) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != 3 {
		return service.Task{}, &RecordError{
			Line:   lineNum,
			Text:   line,
			Reason: fmt.Sprintf("expected 3 fields, got %d", len(fields)),
		}
	}

	raw := fields[0]
	if strings.HasPrefix(raw, "-") || raw == "0" {
		return service.Task{}, &RecordError{Line: lineNum, Text: line, Reason: "id must be positive"}
	}
	if !isDigits(raw) {
		return service.Task{}, &RecordError{Line: lineNum, Text: line, Reason: "id is not an integer"}
	}
	if raw[0] == '0' {
		return service.Task{}, &RecordError{Line: lineNum, Text: line, Reason: "id has leading zeros"}
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return service.Task{}, &RecordError{Line: lineNum, Text: line, Reason: "id is out of range"}
	}

	return service.Task{
		ID:          id,
		Description: fields[1],
		Completed:   fields[2] == CompletedMarker,
	}, nil
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
