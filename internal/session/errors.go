package session

import "errors"

// ErrNotFound is returned by Lookup when no progress is stored for a key.
var ErrNotFound = errors.New("session not found")

// ErrSeedMismatch means stored progress belongs to a different identifier
// than the one presented, which only happens on a hash collision or a
// hand-edited database.
var ErrSeedMismatch = errors.New("stored progress has a different seed")
