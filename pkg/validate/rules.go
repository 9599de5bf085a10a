// Package validate holds the form rules applied before a record is stored.
// Every validator reports the first violated rule only.
package validate

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"condocare/pkg/records"
)

var (
	nameRe     = regexp.MustCompile(`^[A-Za-z\s]+$`)
	phoneRe    = regexp.MustCompile(`^\d{10,11}$`)
	unitRe     = regexp.MustCompile(`^[\d-]+$`)
	digitsRe   = regexp.MustCompile(`^\d+$`)
	carPlateRe = regexp.MustCompile(`^[A-Za-z0-9\s-]+$`)
	cardRe     = regexp.MustCompile(`^\d{16}$`)
	expiryRe   = regexp.MustCompile(`^(0[1-9]|1[0-2])/?([0-9]{4}|[0-9]{2})$`)
	cvvRe      = regexp.MustCompile(`^\d{3,4}$`)
)

// Error is a user-facing validation failure for one field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}

// Required reports whether s has non-whitespace content.
func Required(s string) bool { return strings.TrimSpace(s) != "" }

// NameLike accepts letters and whitespace only.
func NameLike(s string) bool { return nameRe.MatchString(s) }

// PhoneLike accepts exactly 10 or 11 digits.
func PhoneLike(s string) bool { return phoneRe.MatchString(s) }

// UnitNumberLike accepts digits and hyphens, e.g. "12-3".
func UnitNumberLike(s string) bool { return unitRe.MatchString(s) }

func Digits(s string) bool { return digitsRe.MatchString(s) }

// CarPlate accepts letters, digits, spaces and hyphens.
func CarPlate(s string) bool { return carPlateRe.MatchString(s) }

func CardNumber(s string) bool { return cardRe.MatchString(s) }

// Expiry accepts MM/YY or MM/YYYY. The slash is optional.
func Expiry(s string) bool { return expiryRe.MatchString(s) }

func CVV(s string) bool { return cvvRe.MatchString(s) }

// OneOf reports whether s is one of the offered options.
func OneOf(s string, options []string) bool {
	return s != "" && slices.Contains(options, s)
}

// CalendarDate accepts a real date in YYYY-MM-DD form.
func CalendarDate(s string) bool {
	_, err := time.Parse(records.DateLayout, s)
	return err == nil
}

type rule struct {
	field string
	ok    func() bool
	msg   string
}

func firstViolation(rules ...rule) error {
	for _, r := range rules {
		if !r.ok() {
			return &Error{Field: r.field, Message: r.msg}
		}
	}
	return nil
}

func check(field string, ok func() bool, msg string) rule {
	return rule{field: field, ok: ok, msg: msg}
}
