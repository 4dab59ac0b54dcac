package domain

import "errors"

// ErrConversionNotFound is returned when a conversion ID cannot be found in the store.
var ErrConversionNotFound = errors.New("conversion not found")

// ErrTooLarge is returned when an input automaton exceeds the configured state cap.
var ErrTooLarge = errors.New("automaton exceeds maximum allowed size")
