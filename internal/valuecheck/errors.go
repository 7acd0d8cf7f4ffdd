package valuecheck

import "errors"

var (
	// ErrUnexpectedStatus is returned when the service answers with a non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrVerification is returned when served values disagree with a local rebuild.
	ErrVerification = errors.New("verification failed")
)
