package streak

import "fmt"

// InvalidDateFormatError indicates a date string that is not a canonical
// YYYY-MM-DD day key. It signals a caller error, not messy source data.
type InvalidDateFormatError struct {
	Value string
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("invalid date format %q: expected YYYY-MM-DD", e.Value)
}

// InvalidRangeError indicates a query range whose start is after its end.
type InvalidRangeError struct {
	Start string
	End   string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: start %q is after end %q", e.Start, e.End)
}

// EmptyInputError indicates an operation that requires at least one input
// element was called with none.
type EmptyInputError struct {
	Operation string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s requires at least one entry", e.Operation)
}
