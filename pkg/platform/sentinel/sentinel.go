package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Infrastructure layers return
// these (optionally wrapped) so services can translate them into domain
// errors.
//
// These represent factual states about resources, not validation failures.
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	// ErrUnavailable marks an external service (ephemeris oracle, redis)
	// as temporarily unreachable.
	ErrUnavailable = errors.New("unavailable")
)
