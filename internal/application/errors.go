package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound            = errors.New("not found")
	ErrMalformedDescriptor = errors.New("malformed descriptor")
	ErrUnknownContext      = errors.New("unknown context")
	ErrCuratedField        = errors.New("curated field already set")
)

// MalformedDescriptorError is fatal for a theme: processing cannot continue
// without a usable directory index.
type MalformedDescriptorError struct {
	Path   string
	Reason string
}

func (e *MalformedDescriptorError) Error() string {
	return fmt.Sprintf("malformed descriptor %s: %s", e.Path, e.Reason)
}

func (e *MalformedDescriptorError) Is(target error) bool {
	return target == ErrMalformedDescriptor
}

// UnknownContextError is fatal for a theme: a raw context with no manifest
// backing requires a manual manifest edit, never a guess.
type UnknownContextError struct {
	Theme      string
	RawContext string
}

func (e *UnknownContextError) Error() string {
	return fmt.Sprintf("theme %s: raw context %q not in context manifest", e.Theme, e.RawContext)
}

func (e *UnknownContextError) Is(target error) bool {
	return target == ErrUnknownContext
}

// FileReadError is recoverable: the file is reported and excluded from
// results, and the batch continues.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// CuratedFieldError rejects an overwrite of a curator-owned value.
type CuratedFieldError struct {
	ID    string
	Field string
}

func (e *CuratedFieldError) Error() string {
	return fmt.Sprintf("icon %s: %s is already set; curated fields are never overwritten", e.ID, e.Field)
}

func (e *CuratedFieldError) Is(target error) bool {
	return target == ErrCuratedField
}
