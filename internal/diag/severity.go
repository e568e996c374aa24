package diag

// Severity orders diagnostics. Output hides SevInfo unless verbose.
type Severity uint8

const (
	// SevInfo marks results that need no action, e.g. a dry-run change.
	SevInfo Severity = iota
	// SevWarning marks a file that was processed with a caveat.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lower-case form used by the short format.
func (s Severity) Label() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

// Visible reports whether a diagnostic of this severity is printed.
func (s Severity) Visible(verbose bool) bool {
	return verbose || s >= SevWarning
}

// SeverityOf returns the severity code is reported with.
func SeverityOf(code Code) Severity {
	switch code {
	case LexInfo, StrInfo, IOInfo, FixInfo, FixWouldChange:
		return SevInfo
	case FixNotConverge:
		// файл всё равно записан, только без отметки в кэше
		return SevWarning
	}
	return SevError
}
