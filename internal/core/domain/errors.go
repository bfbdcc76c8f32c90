package domain

import "errors"

// ErrNotFound is the explicit "absent" result for lookups on ids missing
// from the store. Callers decide whether that is a no-op or fatal.
var ErrNotFound = errors.New("not found")
