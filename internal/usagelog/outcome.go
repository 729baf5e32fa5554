// Package usagelog describes what happened when an analysis was appended to the usage log.
package usagelog

// Outcome is one of [Logged], [Failed] or [Skipped].
type Outcome interface {
	outcome()
	String() string
}

// Logged means the row was appended.
type Logged struct{}

// Failed means appending was attempted and did not succeed.
type Failed struct {
	Reason string
}

// Skipped means appending was not attempted, typically because credentials are missing.
type Skipped struct {
	Reason string
}

func (Logged) outcome()  {}
func (Failed) outcome()  {}
func (Skipped) outcome() {}

func (Logged) String() string    { return "logged" }
func (o Failed) String() string  { return "failed: " + o.Reason }
func (o Skipped) String() string { return "skipped: " + o.Reason }

// IsLogged reports whether o is [Logged].
func IsLogged(o Outcome) bool {
	_, ok := o.(Logged)
	return ok
}

// Label is a short, bounded name of the outcome kind suitable for metrics labels.
func Label(o Outcome) string {
	switch o.(type) {
	case Logged:
		return "logged"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}
