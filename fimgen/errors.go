package fimgen

import (
	"errors"
	"fmt"
)

var (
	// ErrFileRequired is returned when an operation needs a file path.
	ErrFileRequired = errors.New("file is required")
)

// FileError records the failure of one file. Generation skips the file and
// continues.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
