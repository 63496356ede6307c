// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/service"
)

const (
	checkDone = "[x]"
	checkOpen = "[ ]"
)

// TaskLine formats a task without a trailing newline.
// Format: "{ID:>4}  {[x]|[ ]} {DESCRIPTION}" (4-wide right-aligned ID)
func TaskLine(task service.Task) string {
	check := checkOpen
	if task.Completed {
		check = checkDone
	}
	return fmt.Sprintf("%4d  %s %s", task.ID, check, normalizeDescription(task.Description))
}

// FormatTask writes a task line.
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintln(w, TaskLine(task))
}

// FormatSummary writes the task count line shown under a list.
func FormatSummary(w io.Writer, tasks []service.Task) {
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	noun := "tasks"
	if len(tasks) == 1 {
		noun = "task"
	}
	fmt.Fprintf(w, "%d %s, %d completed\n", len(tasks), noun, done)
}

// normalizeDescription normalizes a description for display.
// - Empty or whitespace-only descriptions become "(empty)"
// - Newlines are replaced with spaces
func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r", " ")
	desc = strings.ReplaceAll(desc, "\n", " ")

	if strings.TrimSpace(desc) == "" {
		return "(empty)"
	}
	return desc
}
