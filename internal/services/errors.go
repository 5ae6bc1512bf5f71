package services

import (
	"errors"
	"fmt"
)

// ErrTenantNotFound is returned by BuildView for an unknown tenant key. It is
// an expected outcome and callers redirect on it.
var ErrTenantNotFound = errors.New("tenant not found")

// ErrAggregationFailed matches every *AggregationError via errors.Is.
var ErrAggregationFailed = errors.New("aggregation failed")

// AggregationError wraps the store failure that aborted a view build.
type AggregationError struct {
	TenantKey string
	Err       error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("build view for %q: %s: %v", e.TenantKey, ErrAggregationFailed, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

func (e *AggregationError) Is(target error) bool {
	return target == ErrAggregationFailed
}
