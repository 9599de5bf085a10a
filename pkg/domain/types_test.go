package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestVisitorPassReadsLegacyEmergencyContact(t *testing.T) {
	raw := `{"id":"1","type":"Visitor","name":"Ali","contact":"0123456789","emergencycontact":"0198765432","icNumber":"900101","carPlateNumber":"WXY 1234","selectedDate":"2024-05-01","selectedTime":"09:00 AM"}`
	var pass VisitorPass
	if err := json.Unmarshal([]byte(raw), &pass); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if pass.EmergencyContact != "0198765432" {
		t.Fatalf("emergency contact = %q, want legacy value", pass.EmergencyContact)
	}

	out, err := json.Marshal(&pass)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(out, &fields); err != nil {
		t.Fatalf("decode fields: %v", err)
	}
	if fields["emergencyContact"] != "0198765432" {
		t.Fatalf("expected canonical emergencyContact key, got %s", out)
	}
}

func TestVisitorPassPrefersCanonicalKey(t *testing.T) {
	raw := `{"emergencyContact":"0111111111","emergencycontact":"0222222222"}`
	var pass VisitorPass
	if err := json.Unmarshal([]byte(raw), &pass); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if pass.EmergencyContact != "0111111111" {
		t.Fatalf("emergency contact = %q, want canonical value", pass.EmergencyContact)
	}
}

func TestBookingSetStatus(t *testing.T) {
	var b Booking
	if err := b.SetStatus("Complete"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if b.Status != BookingComplete {
		t.Fatalf("status = %q", b.Status)
	}
	err := b.SetStatus("complete")
	var invalid *InvalidStatusError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStatusError for lower-case booking status, got %v", err)
	}
	if b.Status != BookingComplete {
		t.Fatalf("rejected status must not change the record")
	}
}

func TestRenovationSetStatus(t *testing.T) {
	var r RenovationRequest
	if err := r.SetStatus("complete"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if err := r.SetStatus("Done"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestLookupFacility(t *testing.T) {
	f, ok := LookupFacility("  yoga room ")
	if !ok {
		t.Fatalf("expected yoga room in catalog")
	}
	if f.Location != "Level 3" || len(f.Specifications) == 0 {
		t.Fatalf("unexpected facility: %+v", f)
	}
	if _, ok := LookupFacility("Swimming Pool"); ok {
		t.Fatalf("unexpected facility match")
	}
	if len(FacilityCatalog()) != len(Facilities) {
		t.Fatalf("catalog and picker options drifted")
	}
}
