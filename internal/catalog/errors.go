// Package catalog is a typed client for the cinema's REST API:
// movies, showtimes, seat availability, snacks, news and gallery.  It
// is a pure proxy with no business logic; every call either resolves
// with a parsed payload or fails with one of the sentinel errors
// below, which the orchestrator translates into a fallback path.
package catalog

import "errors"

// ErrNotFound is returned when the API answers 404 or a single-record
// lookup resolves to nothing.
var ErrNotFound = errors.New("catalog: not found")

// ErrUnavailable is returned for transport failures and non-404 error
// statuses.  Callers treat it as "the catalog service is unreachable"
// and switch to generated fallback data.
var ErrUnavailable = errors.New("catalog: service unavailable")
