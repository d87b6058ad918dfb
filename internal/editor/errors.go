package editor

import "github.com/pkg/errors"

var (
	// ErrInvalidEdit means an edit event was rejected and the state left unchanged.
	ErrInvalidEdit = errors.New("invalid edit")
	// ErrModeUnavailable means the requested mode does not fit the current collection.
	ErrModeUnavailable = errors.New("mode unavailable")
	// ErrActionUnavailable means the toolbar does not currently show the action.
	ErrActionUnavailable = errors.New("action unavailable")
)
