package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"todo/internal/exitcode"
	"todo/internal/service"
)

// ErrTaskIDRequired indicates no task ID was provided.
var ErrTaskIDRequired = errors.New("task ID required")

// ParseTaskID parses the single task ID argument of done and rm.
// A leading '#' is accepted, so "#3" and "3" are the same task.
func ParseTaskID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("too many arguments: %s", strings.Join(args[1:], " "))
	}

	raw := strings.TrimPrefix(strings.TrimSpace(args[0]), "#")
	if !isAllDigits(raw) {
		return 0, fmt.Errorf("invalid task ID: %s", args[0])
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task ID: %s", args[0])
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
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

// reportTaskArgError prints a ParseTaskID error.
func reportTaskArgError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}

// reportStoreError prints a service error for the task id and returns
// the matching exit code.
func reportStoreError(errOut io.Writer, id int, err error) int {
	if errors.Is(err, service.ErrNotFound) {
		fmt.Fprintf(errOut, "error: task ID not found: %d\n", id)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: store error: %v\n", err)
	return exitcode.StoreError
}
