package check

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/av-efi/eficonv/pkg/efi"
)

// Limits bounds the length of free-text fields, counted in characters.
type Limits struct {
	// Line applies to titles.
	Line int
	// Text applies to notes.
	Text int
}

// DefaultLimits returns the limits of the AVefi publication pipeline.
func DefaultLimits() Limits {
	return Limits{Line: efi.DefaultLineLimit, Text: efi.DefaultTextLimit}
}

func (l Limits) withDefaults() Limits {
	if l.Line <= 0 {
		l.Line = efi.DefaultLineLimit
	}
	if l.Text <= 0 {
		l.Text = efi.DefaultTextLimit
	}
	return l
}

// datePattern accepts ISO 8601 dates with year, month or day precision, an
// optional uncertainty marker and an optional second date forming an
// interval.
var datePattern = regexp.MustCompile(
	`^-?([1-9][0-9]{3,}|0[0-9]{3})(-(0[1-9]|1[0-2])(-(0[1-9]|[12][0-9]|3[01]))?)?[?~]?` +
		`(/-?([1-9][0-9]{3,}|0[0-9]{3})(-(0[1-9]|1[0-2])(-(0[1-9]|[12][0-9]|3[01]))?)?[?~]?)?$`)

// ValidDate reports whether s is an acceptable has_date value.
func ValidDate(s string) bool {
	return datePattern.MatchString(s)
}

type named interface {
	Name() string
}

func firstEmptyName[T named](elems []T) int {
	for i, e := range elems {
		if e.Name() == "" {
			return i
		}
	}
	return -1
}

// ValidateFields applies the per-record rules that do not depend on other
// records. Each rule reports at most one violation per record.
func ValidateFields(rec *efi.Record, limits Limits) []Violation {
	limits = limits.withDefaults()
	var out []Violation
	add := func(kind ViolationKind, format string, args ...interface{}) {
		out = append(out, Violation{
			Kind:       kind,
			Record:     rec.PrimaryIdentifier(),
			RecordKind: rec.Kind,
			Message:    fmt.Sprintf(format, args...),
		})
	}

	titles := append([]efi.Title{rec.HasPrimaryTitle}, rec.HasAlternativeTitle...)
	for _, title := range titles {
		if utf8.RuneCountInString(title.HasName) > limits.Line {
			add(ViolationTitleTooLong,
				"record %s violates limit of %d characters on title length: %s",
				rec.PrimaryIdentifier().ID, limits.Line, title.HasName)
			break
		}
	}

	for _, event := range rec.HasEvent {
		if event.HasDate != "" && !ValidDate(event.HasDate) {
			add(ViolationInvalidDate,
				"record %s has event(s) with invalid value in has_date: %s",
				rec.PrimaryIdentifier().ID, event.HasDate)
			break
		}
	}

	if where := emptyNameIn(rec); where != "" {
		add(ViolationEmptyName, "empty has_name in %s of record %s", where, rec.PrimaryIdentifier().ID)
	}

	for i, note := range rec.HasNote {
		if utf8.RuneCountInString(note) > limits.Text {
			add(ViolationNoteTooLong,
				"record %s violates limit of %d characters on has_note[%d]",
				rec.PrimaryIdentifier().ID, limits.Text, i)
			break
		}
	}

	return out
}

// emptyNameIn returns a description of the first element lacking a
// display name, or "" if there is none.
func emptyNameIn(rec *efi.Record) string {
	for e, event := range rec.HasEvent {
		for a, activity := range event.HasActivity {
			if i := firstEmptyName(activity.HasAgent); i >= 0 {
				return fmt.Sprintf("has_event[%d].has_activity[%d].has_agent[%d]", e, a, i)
			}
		}
		if i := firstEmptyName(event.LocatedIn); i >= 0 {
			return fmt.Sprintf("has_event[%d].located_in[%d]", e, i)
		}
	}
	if rec.Kind != efi.KindWork {
		return ""
	}
	if i := firstEmptyName(rec.HasGenre); i >= 0 {
		return fmt.Sprintf("has_genre[%d]", i)
	}
	if i := firstEmptyName(rec.HasSubject); i >= 0 {
		return fmt.Sprintf("has_subject[%d]", i)
	}
	return ""
}
