package ratelimiter

import "errors"

var (
	// ErrInvalidConfig is returned by New when a parameter fails validation.
	ErrInvalidConfig = errors.New("invalid limiter configuration")

	// ErrUnknownAlgorithm is returned by New for an unrecognized algorithm
	// name. There is no fallback to a default algorithm.
	ErrUnknownAlgorithm = errors.New("unknown rate limiter algorithm")
)
