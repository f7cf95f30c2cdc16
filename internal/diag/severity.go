package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevHint marks tokens that may be fine (e.g. a sample loaded
	// dynamically that the engine never reported).
	SevHint Severity = iota
	// SevWarning marks likely mistakes with a suggested correction.
	SevWarning
	// SevError marks notation that failed to parse.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevHint:
		return "HINT"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// LSP returns the DiagnosticSeverity value used on the wire.
func (s Severity) LSP() int {
	switch s {
	case SevError:
		return 1
	case SevWarning:
		return 2
	case SevHint:
		return 4
	}
	return 3
}
