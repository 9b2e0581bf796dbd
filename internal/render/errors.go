package render

import "fmt"

// Error reports a failed export. A partially built document is never
// returned alongside it.
type Error struct {
	Format  string // "PDF" or "HTML"
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s export failed: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("%s export failed: %v", e.Format, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }
