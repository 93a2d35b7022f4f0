// Package apperr holds the error kinds the delivery layer maps to HTTP codes.
// Workflows wrap lower-layer errors with context and one of these sentinels;
// handlers decide status codes with errors.Is, never by string matching.
package apperr

import "errors"

var (
	// ErrDuplicateLog is returned when a daily log already exists for the
	// (user, date) pair. The authoritative source is the database unique
	// constraint, not the pre-read.
	ErrDuplicateLog = errors.New("log for this date already exists, use PUT to update")

	// ErrLogNotFound is returned when no daily log exists for the requested date.
	ErrLogNotFound = errors.New("no log found for this date")

	// ErrNoLogsInRange is returned by summarize when the resolved date range
	// contains no logs.
	ErrNoLogsInRange = errors.New("no logs found in date range")

	// ErrInvalidSearchType is returned before any embedding work happens when
	// search_type is neither "concepts" nor "logs".
	ErrInvalidSearchType = errors.New("search_type must be 'concepts' or 'logs'")
)
