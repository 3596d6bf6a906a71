package domain

import "errors"

// ErrInvalidInput is returned from pipeline entry points when the text or
// subject is empty or malformed. It is the only error the entry points
// surface to callers; every other failure degrades into a result field.
var ErrInvalidInput = errors.New("invalid input")

// ErrTransientUpstream marks a network-class failure (timeout, connection
// refused) on an external call. Retried up to the configured bound, then
// converted to a fallback or failed result.
var ErrTransientUpstream = errors.New("transient upstream failure")

// ErrPermanentUpstream marks an auth or validation failure from an external
// call. Never retried; converted directly to a fallback or failed result.
var ErrPermanentUpstream = errors.New("permanent upstream failure")

// ErrAggregationFailure marks an unexpected internal error while combining
// already-available component results. Caught at the aggregator boundary
// and converted to a canonical zero-score verdict, never propagated.
var ErrAggregationFailure = errors.New("aggregation failure")

// IsTransient reports whether err is a retryable upstream failure.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransientUpstream)
}

// IsPermanent reports whether err is a non-retryable upstream failure.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPermanentUpstream)
}
