package domain

import (
	"fmt"
	"strings"
)

// InvalidStatusError reports a status outside an entity's status set.
type InvalidStatusError struct {
	Status  string
	Allowed []string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q (allowed: %s)", e.Status, strings.Join(e.Allowed, ", "))
}

// Option sets presented by the pickers. Selection fields must come from these.
var (
	Facilities = []string{
		"Badminton Court",
		"BBQ Pits",
		"Multipurpose Room",
		"Mini Cinema",
		"Tennis Court",
		"Yoga Room",
	}

	TimeSlots = []string{
		"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
		"01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM",
		"05:00 PM", "06:00 PM", "07:00 PM", "08:00 PM",
		"09:00 PM", "10:00 PM",
	}

	BookingDurations = []string{"1 hour", "2 hours", "3 hours", "4 hours", "5 hours"}

	VisitorTypes = []string{
		"Visitor",
		"Pickup / Drop Off",
		"Contractor / Vendor",
		"Management Visitor",
		"Courier / Delivery",
	}

	RenovationDurations = []string{
		"1 month", "2 months", "3 months", "4 months", "5 months", "6 months",
		"7 months", "8 months", "9 months", "10 months", "11 months", "12 months",
	}
)

// Options groups every picker option set.
type Options struct {
	Facilities          []string `json:"facilities"`
	TimeSlots           []string `json:"timeSlots"`
	BookingDurations    []string `json:"bookingDurations"`
	VisitorTypes        []string `json:"visitorTypes"`
	RenovationDurations []string `json:"renovationDurations"`
}

// AllOptions returns a copy of the option sets.
func AllOptions() Options {
	return Options{
		Facilities:          append([]string(nil), Facilities...),
		TimeSlots:           append([]string(nil), TimeSlots...),
		BookingDurations:    append([]string(nil), BookingDurations...),
		VisitorTypes:        append([]string(nil), VisitorTypes...),
		RenovationDurations: append([]string(nil), RenovationDurations...),
	}
}
