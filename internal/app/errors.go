package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
	ErrInvalidOrder = errors.New("invalid leaderboard order")
)
