package bot

import "errors"

var (
	// ErrUnknownCommand is returned when a prefixed message names no registered command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrDuplicateCommand is returned when registering a name that already exists.
	ErrDuplicateCommand = errors.New("duplicate command")
	// ErrInvalidPrefix is returned for an empty prefix or one containing whitespace.
	ErrInvalidPrefix = errors.New("invalid command prefix")
)
