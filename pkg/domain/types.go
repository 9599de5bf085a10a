package domain

import "encoding/json"

// Collection keys. Each key holds one JSON array of a single entity kind.
const (
	KeyBookingHistory     = "bookingHistory"
	KeyVisitorPassHistory = "visitorPassHistory"
	KeyComplaintHistory   = "complaintHistory"
	KeyRenovationHistory  = "renovationHistory"
	KeyUserProfile        = "userProfile"
	KeyPaymentData        = "paymentData"
)

// CollectionKeys lists every historized collection in display order.
var CollectionKeys = []string{
	KeyBookingHistory,
	KeyVisitorPassHistory,
	KeyComplaintHistory,
	KeyRenovationHistory,
}

type BookingStatus string

const (
	BookingPending  BookingStatus = "Pending"
	BookingComplete BookingStatus = "Complete"
)

// Renovation statuses are lower-case on disk; existing data depends on it.
type RenovationStatus string

const (
	RenovationPending  RenovationStatus = "pending"
	RenovationComplete RenovationStatus = "complete"
)

type Booking struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Contact      string        `json:"contact"`
	UnitNumber   string        `json:"unitNumber"`
	Facility     string        `json:"facility"`
	SelectedDate string        `json:"selectedDate"`
	SelectedTime string        `json:"selectedTime"`
	Duration     string        `json:"duration"`
	Status       BookingStatus `json:"status"`
}

func (b *Booking) GetID() string   { return b.ID }
func (b *Booking) SetID(id string) { b.ID = id }

// SetStatus accepts only the booking status set.
func (b *Booking) SetStatus(status string) error {
	switch s := BookingStatus(status); s {
	case BookingPending, BookingComplete:
		b.Status = s
		return nil
	}
	return &InvalidStatusError{Status: status, Allowed: []string{string(BookingPending), string(BookingComplete)}}
}

type VisitorPass struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	Name             string `json:"name"`
	Contact          string `json:"contact"`
	EmergencyContact string `json:"emergencyContact"`
	ICNumber         string `json:"icNumber"`
	CarPlateNumber   string `json:"carPlateNumber"`
	SelectedDate     string `json:"selectedDate"`
	SelectedTime     string `json:"selectedTime"`
}

func (p *VisitorPass) GetID() string   { return p.ID }
func (p *VisitorPass) SetID(id string) { p.ID = id }

// UnmarshalJSON also accepts the legacy "emergencycontact" key written by
// older app versions.
func (p *VisitorPass) UnmarshalJSON(data []byte) error {
	type plain VisitorPass
	aux := struct {
		*plain
		Legacy string `json:"emergencycontact"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.EmergencyContact == "" {
		p.EmergencyContact = aux.Legacy
	}
	return nil
}

type Complaint struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (c *Complaint) GetID() string   { return c.ID }
func (c *Complaint) SetID(id string) { c.ID = id }

type RenovationRequest struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Contact      string           `json:"contact"`
	UnitNumber   string           `json:"unitNumber"`
	SelectedDate string           `json:"selectedDate"`
	Duration     string           `json:"duration"`
	Status       RenovationStatus `json:"status"`
}

func (r *RenovationRequest) GetID() string   { return r.ID }
func (r *RenovationRequest) SetID(id string) { r.ID = id }

// SetStatus accepts only the renovation status set.
func (r *RenovationRequest) SetStatus(status string) error {
	switch s := RenovationStatus(status); s {
	case RenovationPending, RenovationComplete:
		r.Status = s
		return nil
	}
	return &InvalidStatusError{Status: status, Allowed: []string{string(RenovationPending), string(RenovationComplete)}}
}

// Profile is the singleton resident profile. It has no id and no history.
type Profile struct {
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	UnitNumber   string `json:"unitNumber"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Image        string `json:"image,omitempty"`
}

type PaymentMethod string

const (
	PaymentCard    PaymentMethod = "card"
	PaymentEWallet PaymentMethod = "ewallet"
)

// PaymentSnapshot is the last submitted deposit form. Only the last four card
// digits are kept and the CVV is never stored.
type PaymentSnapshot struct {
	Method          PaymentMethod `json:"method"`
	CardName        string        `json:"cardName,omitempty"`
	CardLast4       string        `json:"cardLast4,omitempty"`
	ExpiryDate      string        `json:"expiryDate,omitempty"`
	ReferenceNumber string        `json:"referenceNumber"`
	Receipt         string        `json:"receipt,omitempty"`
	SubmittedAt     string        `json:"submittedAt"`
}

// PaymentForm is the deposit form as submitted. It is never stored as is.
type PaymentForm struct {
	Method          PaymentMethod `json:"method"`
	CardName        string        `json:"cardName"`
	CardNumber      string        `json:"cardNumber"`
	ExpiryDate      string        `json:"expiryDate"`
	CVV             string        `json:"cvv"`
	ReferenceNumber string        `json:"referenceNumber"`
	Receipt         string        `json:"receipt"`
}

// ProfileInput is a profile save request. Password is plain text and empty
// when unchanged.
type ProfileInput struct {
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	UnitNumber string `json:"unitNumber"`
	Password   string `json:"password"`
}
