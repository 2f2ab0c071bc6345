package diag

// Severity задаёт важность диагностики. Ошибка проваливает компиляцию,
// предупреждение и информация нет.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String is the word printed before the code ("ERROR E1003").
func (s Severity) String() string {
	switch s {
	case SevError:
		return "ERROR"
	case SevWarning:
		return "WARNING"
	case SevInfo:
		return "INFO"
	}
	return "UNKNOWN"
}

// Letter is the prefix of a code ID.
func (s Severity) Letter() byte {
	switch s {
	case SevError:
		return 'E'
	case SevWarning:
		return 'W'
	}
	return 'I'
}

// AtLeast reports whether s is as severe as min.
func (s Severity) AtLeast(min Severity) bool { return s >= min }

// Severity returns the severity a code is reported with: codes below 2000
// are errors, 2000..5999 warnings, 6000 and above informational.
func (c Code) Severity() Severity {
	switch {
	case c >= 6000:
		return SevInfo
	case c >= 2000:
		return SevWarning
	default:
		return SevError
	}
}
