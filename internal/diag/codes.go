package diag

// Code identifies the class of a diagnostic. Codes are stable strings so
// editor clients can filter on them.
type Code string

const (
	// CodeParseError marks notation the grammar rejected.
	CodeParseError Code = "parse-error"
	// CodeUnknownSample marks an atom not found in any vocabulary layer.
	CodeUnknownSample Code = "unknown-sample"
	// CodeUnknownFunction marks a dot-call to a name outside the glossary.
	CodeUnknownFunction Code = "unknown-function"
)
