package repositories

import "fmt"

// RepositoryError reports a failed data-store operation. A missing row is
// never a RepositoryError.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RepositoryError{Op: op, Err: err}
}

// Nullable columns are normalized here so nothing downstream sees a nil.

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func num(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func dec(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
