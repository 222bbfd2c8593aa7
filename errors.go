package chestconv

import (
	"errors"
	"fmt"
	"image"
)

// ErrOutOfBounds is wrapped by every GeometryError.
var ErrOutOfBounds = errors.New("chestconv: rectangle out of image bounds")

// GeometryError reports a copy that would read or write outside an image.
// It means the box constants do not fit the atlas being converted.
type GeometryError struct {
	Op     string // "read" or "write"
	Rect   image.Rectangle
	Bounds image.Rectangle
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("chestconv: %s of %v outside image bounds %v", e.Op, e.Rect, e.Bounds)
}

func (e *GeometryError) Unwrap() error {
	return ErrOutOfBounds
}

// DecodeError reports a source atlas that could not be opened or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("chestconv: failed to decode %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports a destination atlas that could not be written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("chestconv: failed to encode %q: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
