package tui

import "errors"

// ErrMissingHealthService is returned when the health service is not provided.
var ErrMissingHealthService = errors.New("tui: health service is required")

// ErrMissingStatusService is returned when the status service is not provided.
var ErrMissingStatusService = errors.New("tui: status service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
