package dataset

import "fmt"

// LoadError reports a failed fetch or parse of the dataset. It is returned
// as-is to the caller; nothing retries it.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dataset from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
