// Package store holds the validation.History implementations: a capped
// in-memory ring for single-instance deployments, plus redis- and
// postgres-backed variants for shared or durable history.
package store

// DefaultRetention bounds every history implementation so sustained load
// cannot grow the audit log without limit.
const DefaultRetention = 1000

const recentErrorsLimit = 5
