package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"condocare/pkg/domain"
	"condocare/pkg/kv"
	"condocare/pkg/records"
	"condocare/pkg/session"
	"condocare/pkg/storage"
	"condocare/pkg/validate"
)

// Config holds the collaborators of the application core.
type Config struct {
	Store         kv.Store
	Photos        storage.PhotoStore
	Sessions      session.Store
	Logger        *slog.Logger
	MaxPhotoBytes int64
	Now           func() time.Time
}

// App implements the resident services: form submissions, history,
// profile and the global reset.
type App struct {
	store         kv.Store
	photos        storage.PhotoStore
	sessions      session.Store
	logger        *slog.Logger
	maxPhotoBytes int64
	now           func() time.Time

	bookings    *records.Collection[domain.Booking, *domain.Booking]
	passes      *records.Collection[domain.VisitorPass, *domain.VisitorPass]
	complaints  *records.Collection[domain.Complaint, *domain.Complaint]
	renovations *records.Collection[domain.RenovationRequest, *domain.RenovationRequest]
}

// New wires the application. Store and Photos are required.
func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, errors.New("key-value store required")
	}
	if cfg.Photos == nil {
		return nil, errors.New("photo store required")
	}
	if cfg.Sessions == nil {
		cfg.Sessions = session.NewMemoryStore(24 * time.Hour)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.MaxPhotoBytes <= 0 {
		cfg.MaxPhotoBytes = 5 << 20
	}
	ids := records.NewIDGenerator(cfg.Now)
	return &App{
		store:         cfg.Store,
		photos:        cfg.Photos,
		sessions:      cfg.Sessions,
		logger:        cfg.Logger,
		maxPhotoBytes: cfg.MaxPhotoBytes,
		now:           cfg.Now,
		bookings:      records.NewCollection[domain.Booking](cfg.Store, domain.KeyBookingHistory, ids, cfg.Logger),
		passes:        records.NewCollection[domain.VisitorPass](cfg.Store, domain.KeyVisitorPassHistory, ids, cfg.Logger),
		complaints:    records.NewCollection[domain.Complaint](cfg.Store, domain.KeyComplaintHistory, ids, cfg.Logger),
		renovations:   records.NewCollection[domain.RenovationRequest](cfg.Store, domain.KeyRenovationHistory, ids, cfg.Logger),
	}, nil
}

// Keys lists the stored keys. Used by the health check.
func (a *App) Keys(ctx context.Context) ([]string, error) {
	return a.store.Keys(ctx)
}

// CreateBooking validates and stores a facility booking as Pending.
// Any id supplied by the caller is replaced.
func (a *App) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	b = domain.Booking{
		Name:         strings.TrimSpace(b.Name),
		Contact:      strings.TrimSpace(b.Contact),
		UnitNumber:   strings.TrimSpace(b.UnitNumber),
		Facility:     strings.TrimSpace(b.Facility),
		SelectedDate: strings.TrimSpace(b.SelectedDate),
		SelectedTime: strings.TrimSpace(b.SelectedTime),
		Duration:     strings.TrimSpace(b.Duration),
		Status:       domain.BookingPending,
	}
	if err := validate.Booking(b); err != nil {
		return domain.Booking{}, err
	}
	return a.bookings.Append(ctx, b)
}

// CreateVisitorPass validates and stores a visitor pass.
func (a *App) CreateVisitorPass(ctx context.Context, p domain.VisitorPass) (domain.VisitorPass, error) {
	p = domain.VisitorPass{
		Type:             strings.TrimSpace(p.Type),
		Name:             strings.TrimSpace(p.Name),
		Contact:          strings.TrimSpace(p.Contact),
		EmergencyContact: strings.TrimSpace(p.EmergencyContact),
		ICNumber:         strings.TrimSpace(p.ICNumber),
		CarPlateNumber:   strings.TrimSpace(p.CarPlateNumber),
		SelectedDate:     strings.TrimSpace(p.SelectedDate),
		SelectedTime:     strings.TrimSpace(p.SelectedTime),
	}
	if err := validate.VisitorPass(p); err != nil {
		return domain.VisitorPass{}, err
	}
	return a.passes.Append(ctx, p)
}

// CreateComplaint stores a complaint with markup stripped from its text.
func (a *App) CreateComplaint(ctx context.Context, c domain.Complaint) (domain.Complaint, error) {
	c = domain.Complaint{
		Title:   validate.PlainText(c.Title),
		Message: validate.PlainText(c.Message),
	}
	if err := validate.Complaint(c); err != nil {
		return domain.Complaint{}, err
	}
	return a.complaints.Append(ctx, c)
}

// RequestRenovation validates and stores a renovation request as pending.
func (a *App) RequestRenovation(ctx context.Context, r domain.RenovationRequest) (domain.RenovationRequest, error) {
	r = domain.RenovationRequest{
		Name:         strings.TrimSpace(r.Name),
		Contact:      strings.TrimSpace(r.Contact),
		UnitNumber:   strings.TrimSpace(r.UnitNumber),
		SelectedDate: strings.TrimSpace(r.SelectedDate),
		Duration:     strings.TrimSpace(r.Duration),
		Status:       domain.RenovationPending,
	}
	if err := validate.Renovation(r); err != nil {
		return domain.RenovationRequest{}, err
	}
	return a.renovations.Append(ctx, r)
}

// PayDeposit validates the deposit form and overwrites the payment snapshot.
// Only the last four card digits are kept; the CVV is dropped.
func (a *App) PayDeposit(ctx context.Context, f domain.PaymentForm) (domain.PaymentSnapshot, error) {
	f = domain.PaymentForm{
		Method:          domain.PaymentMethod(strings.ToLower(strings.TrimSpace(string(f.Method)))),
		CardName:        strings.TrimSpace(f.CardName),
		CardNumber:      strings.ReplaceAll(strings.TrimSpace(f.CardNumber), " ", ""),
		ExpiryDate:      strings.TrimSpace(f.ExpiryDate),
		CVV:             strings.TrimSpace(f.CVV),
		ReferenceNumber: strings.TrimSpace(f.ReferenceNumber),
		Receipt:         strings.TrimSpace(f.Receipt),
	}
	if err := validate.Payment(f); err != nil {
		return domain.PaymentSnapshot{}, err
	}
	snap := domain.PaymentSnapshot{
		Method:          f.Method,
		ReferenceNumber: f.ReferenceNumber,
		SubmittedAt:     a.now().UTC().Format(time.RFC3339),
	}
	switch f.Method {
	case domain.PaymentCard:
		snap.CardName = f.CardName
		snap.CardLast4 = f.CardNumber[len(f.CardNumber)-4:]
		snap.ExpiryDate = f.ExpiryDate
	case domain.PaymentEWallet:
		snap.Receipt = f.Receipt
	}
	if err := a.putJSON(ctx, "pay deposit", domain.KeyPaymentData, snap); err != nil {
		return domain.PaymentSnapshot{}, err
	}
	return snap, nil
}

// Payment returns the last payment snapshot, if any.
func (a *App) Payment(ctx context.Context) (domain.PaymentSnapshot, bool, error) {
	var snap domain.PaymentSnapshot
	ok, err := a.getJSON(ctx, "payment", domain.KeyPaymentData, &snap)
	return snap, ok, err
}

func (a *App) putJSON(ctx context.Context, op, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}
	if err := a.store.Set(ctx, key, string(data)); err != nil {
		a.logger.Error("failed to write key", "key", key, "err", err)
		return &records.StoreError{Op: op, Key: key, Kind: records.ErrStorageWrite, Err: err}
	}
	return nil
}

func (a *App) getJSON(ctx context.Context, op, key string, v any) (bool, error) {
	raw, ok, err := a.store.Get(ctx, key)
	if err != nil {
		a.logger.Error("failed to read key", "key", key, "err", err)
		return false, &records.StoreError{Op: op, Key: key, Kind: records.ErrStorageRead, Err: err}
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		a.logger.Warn("corrupt value", "key", key, "err", err)
		return false, &records.StoreError{Op: op, Key: key, Kind: records.ErrCorruptData, Err: err}
	}
	return true, nil
}
