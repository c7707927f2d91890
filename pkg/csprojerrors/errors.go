package csprojerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound indicates the project file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrAccessDenied indicates the project file could not be opened for
	// reading and writing, e.g. due to permissions or a lock held elsewhere.
	ErrAccessDenied = errors.New("access denied")

	// ErrMalformedXML indicates the project file is not well-formed XML.
	ErrMalformedXML = errors.New("malformed XML")

	// ErrWrite indicates an error occurred while writing.
	ErrWrite = errors.New("write")

	// ErrWriteFile indicates an error occurred while writing a file.
	ErrWriteFile = fmt.Errorf("file: %w", ErrWrite)

	// ErrClosed indicates a document was used after it was closed.
	ErrClosed = errors.New("document already closed")

	// ErrNoMatchingGroup indicates no PropertyGroup matched the selector.
	ErrNoMatchingGroup = errors.New("no matching PropertyGroup")

	// ErrInvalidSelector indicates a configuration selector outside the
	// known set.
	ErrInvalidSelector = errors.New("invalid configuration selector")

	// ErrInvalidSetting indicates a settings table entry cannot be written
	// as an element.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrInvalidFormat indicates an unexpected or invalid format was encountered.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidArguments indicates invalid arguments were provided.
	ErrInvalidArguments = errors.New("invalid arguments")
)
