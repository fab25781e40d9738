package lifecycle

import "fmt"

// RecordError wraps a failure for one record of a batch. Row is the
// 1-indexed sheet row including the header, so the first data record
// is row 2.
type RecordError struct {
	Row   int
	Email string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.Email, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError builds a RecordError from a zero-based batch index
func NewRecordError(index int, email string, err error) *RecordError {
	return &RecordError{Row: index + 2, Email: email, Err: err}
}
