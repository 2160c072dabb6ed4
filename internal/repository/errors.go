package repository

import (
	"errors"
	"fmt"
)

var (
	ErrStoreMissing = errors.New("store file does not exist")
	ErrStoreCorrupt = errors.New("store file is unreadable")
	ErrStoreWrite   = errors.New("store write failed")
)

// ReadError is returned by SheetRepo.Read. Kind is ErrStoreMissing or
// ErrStoreCorrupt; both match with errors.Is.
type ReadError struct {
	Path string
	Kind error
	Err  error
}

func (e *ReadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("read %s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("read %s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *ReadError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// WriteError wraps any failure while rewriting the store file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrStoreWrite, e.Err}
}
