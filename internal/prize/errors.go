package prize

import "fmt"

// DomainError reports input that is ill-defined for the prize math itself:
// empty pools, zero or negative probabilities. It always aborts session
// construction.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string {
	return "prize: " + e.Reason
}

func domainErrorf(format string, args ...any) *DomainError {
	return &DomainError{Reason: fmt.Sprintf(format, args...)}
}

// ValidationError reports a structural violation of a candidate prize set:
// count out of range, duplicate ids, probability sum off tolerance, or an
// out-of-bounds winning index. It is the last gate before a session is shown
// to the user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "prize: " + e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
