package types

import "fmt"

// Record is one declaration extracted from keymap source text. The
// scanner emits records in file order; the checks never look at raw
// source, only at records, so all syntax assumptions about the dialect
// live in one place.
type Record struct {
	Kind  RecordKind
	Name  string
	Value int
	File  string
	Line  int
}

func (r Record) Location() string {
	return fmt.Sprintf("%s:%d", r.File, r.Line)
}

// Violation is a single structural error found by a consistency check.
type Violation struct {
	Check   CheckKind
	Message string
	File    string
	Line    int
}

func (v Violation) String() string {
	if v.File == "" {
		return fmt.Sprintf("[%s] %s", v.Check, v.Message)
	}
	return fmt.Sprintf("[%s] %s:%d: %s", v.Check, v.File, v.Line, v.Message)
}

// CheckResult aggregates every violation found during one run. The
// checker keeps scanning after the first hit; a run either reports all
// of them or none.
type CheckResult struct {
	Violations []Violation
}

func (r CheckResult) OK() bool {
	return len(r.Violations) == 0
}

func (r *CheckResult) Add(check CheckKind, file string, line int, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{
		Check:   check,
		Message: fmt.Sprintf(format, args...),
		File:    file,
		Line:    line,
	})
}

func (r *CheckResult) Merge(other CheckResult) {
	r.Violations = append(r.Violations, other.Violations...)
}
