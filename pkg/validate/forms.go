package validate

import (
	"condocare/pkg/auth"
	"condocare/pkg/domain"
)

const (
	msgSelectDate = "Please select a date."
	msgSelectTime = "Please select a time."
	msgPhone      = "Contact should be a 10 or 11-digit number."
	msgUnit       = "Unit number should contain only numbers and dashes."
)

func residentRules(name, contact, unit string) []rule {
	return []rule{
		check("name", func() bool { return Required(name) }, "Name field cannot be empty."),
		check("name", func() bool { return NameLike(name) }, "Name should contain only letters."),
		check("contact", func() bool { return Required(contact) }, "Contact field cannot be empty."),
		check("contact", func() bool { return PhoneLike(contact) }, msgPhone),
		check("unitNumber", func() bool { return Required(unit) }, "Unit Number field cannot be empty."),
		check("unitNumber", func() bool { return UnitNumberLike(unit) }, msgUnit),
	}
}

// Booking validates a facility booking form.
func Booking(b domain.Booking) error {
	rules := residentRules(b.Name, b.Contact, b.UnitNumber)
	rules = append(rules,
		check("facility", func() bool { return OneOf(b.Facility, domain.Facilities) }, "Please select a facility."),
		check("selectedDate", func() bool { return CalendarDate(b.SelectedDate) }, msgSelectDate),
		check("selectedTime", func() bool { return OneOf(b.SelectedTime, domain.TimeSlots) }, msgSelectTime),
		check("duration", func() bool { return OneOf(b.Duration, domain.BookingDurations) }, "Please select a duration."),
	)
	return firstViolation(rules...)
}

// VisitorPass validates a visitor pass form.
func VisitorPass(p domain.VisitorPass) error {
	return firstViolation(
		check("type", func() bool { return Required(p.Type) }, "Type field cannot be empty."),
		check("type", func() bool { return OneOf(p.Type, domain.VisitorTypes) }, "Please select a visitor type."),
		check("name", func() bool { return Required(p.Name) }, "Name field cannot be empty."),
		check("name", func() bool { return NameLike(p.Name) }, "Name should contain only letters."),
		check("contact", func() bool { return Required(p.Contact) }, "Contact field cannot be empty."),
		check("contact", func() bool { return PhoneLike(p.Contact) }, msgPhone),
		check("emergencyContact", func() bool { return Required(p.EmergencyContact) }, "Contact field cannot be empty."),
		check("emergencyContact", func() bool { return PhoneLike(p.EmergencyContact) }, msgPhone),
		check("icNumber", func() bool { return Required(p.ICNumber) }, "IC Number cannot be empty."),
		check("icNumber", func() bool { return Digits(p.ICNumber) }, "IC Number should contain only digits."),
		check("carPlateNumber", func() bool { return CarPlate(p.CarPlateNumber) }, "Car Plate Number should contain only letters, numbers, and hyphens."),
		check("selectedDate", func() bool { return CalendarDate(p.SelectedDate) }, msgSelectDate),
		check("selectedTime", func() bool { return OneOf(p.SelectedTime, domain.TimeSlots) }, msgSelectTime),
	)
}

// Complaint validates a complaint. Callers pass text already reduced with PlainText.
func Complaint(c domain.Complaint) error {
	return firstViolation(
		check("title", func() bool { return Required(c.Title) }, "Title field cannot be empty."),
		check("message", func() bool { return Required(c.Message) }, "Message field cannot be empty."),
	)
}

// Renovation validates a renovation request.
func Renovation(r domain.RenovationRequest) error {
	const allFields = "All fields must be filled out."
	return firstViolation(
		check("name", func() bool { return Required(r.Name) }, allFields),
		check("contact", func() bool { return Required(r.Contact) }, allFields),
		check("unitNumber", func() bool { return Required(r.UnitNumber) }, allFields),
		check("selectedDate", func() bool { return Required(r.SelectedDate) }, allFields),
		check("duration", func() bool { return Required(r.Duration) }, allFields),
		check("name", func() bool { return NameLike(r.Name) }, "Name should contain only letters."),
		check("contact", func() bool { return PhoneLike(r.Contact) }, "Contact must be a 10 or 11 digit number."),
		check("unitNumber", func() bool { return UnitNumberLike(r.UnitNumber) }, msgUnit),
		check("selectedDate", func() bool { return CalendarDate(r.SelectedDate) }, msgSelectDate),
		check("duration", func() bool { return OneOf(r.Duration, domain.RenovationDurations) }, "Please select a duration."),
	)
}

// Payment validates the deposit form for the selected tab.
func Payment(f domain.PaymentForm) error {
	const refRequired = "Reference Number is required."
	switch f.Method {
	case domain.PaymentCard:
		return firstViolation(
			check("cardName", func() bool { return Required(f.CardName) }, "Card Name is required."),
			check("cardNumber", func() bool { return CardNumber(f.CardNumber) }, "Card Number must be 16 digits long."),
			check("expiryDate", func() bool { return Expiry(f.ExpiryDate) }, "Expiry Date must be in MM/YY format."),
			check("cvv", func() bool { return CVV(f.CVV) }, "CVV must be 3 or 4 digits long."),
			check("referenceNumber", func() bool { return Required(f.ReferenceNumber) }, refRequired),
		)
	case domain.PaymentEWallet:
		return firstViolation(
			check("referenceNumber", func() bool { return Required(f.ReferenceNumber) }, refRequired),
			check("receipt", func() bool { return Required(f.Receipt) }, "Receipt is required."),
		)
	}
	return &Error{Field: "method", Message: "Please select a payment method."}
}

// Profile validates a profile save. A password is mandatory only when none
// is stored yet; a supplied one must meet the password policy.
func Profile(in domain.ProfileInput, hasPassword bool) error {
	if err := firstViolation(residentRules(in.Name, in.Contact, in.UnitNumber)...); err != nil {
		return err
	}
	if in.Password == "" {
		if hasPassword {
			return nil
		}
		return &Error{Field: "password", Message: "Password is required."}
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return &Error{Field: "password", Message: err.Error()}
	}
	return nil
}
