package codec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/renameio/v2"

	"todo/internal/service"
)

// FileMode is the permission used for a newly written tasks file.
const FileMode = 0o644

// WriteError is returned when the tasks file cannot be replaced.
// The previous file content, if any, is left intact.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write tasks file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// File is a tasks file on disk.
type File struct {
	path string
	opts Options
}

// NewFile returns a File for path. The file need not exist.
func NewFile(path string, opts Options) *File {
	return &File{path: path, opts: opts}
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Read loads all tasks from the file.
// A missing file is an empty task list, not an error.
func (f *File) Read() ([]service.Task, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []service.Task{}, nil
		}
		return nil, fmt.Errorf("open tasks file: %w", err)
	}
	defer file.Close()

	tasks, err := Decode(file, f.opts)
	if err != nil {
		return nil, fmt.Errorf("read tasks file %s: %w", f.path, err)
	}
	return tasks, nil
}

// Write replaces the file with tasks.
// The records go to a temporary file in the same directory which is
// then renamed over the live file, so a crash mid-write never leaves a
// truncated file behind.
func (f *File) Write(tasks []service.Task) error {
	pending, err := renameio.NewPendingFile(f.path, renameio.WithPermissions(FileMode))
	if err != nil {
		return &WriteError{Path: f.path, Err: err}
	}
	defer pending.Cleanup()

	if err := Encode(pending, tasks); err != nil {
		return &WriteError{Path: f.path, Err: err}
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return &WriteError{Path: f.path, Err: err}
	}

	if f.opts.Logger != nil {
		f.opts.Logger.Debug("wrote tasks file", "path", f.path, "tasks", len(tasks))
	}
	return nil
}
