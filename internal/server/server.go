package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"condocare/internal/app"
	"condocare/internal/ratelimit"
	"condocare/internal/util"
	"condocare/pkg/domain"
	"condocare/pkg/records"
	"condocare/pkg/validate"
)

const maxJSONBody = 1 << 20

// Config wires required dependencies for the HTTP server.
type Config struct {
	App            *app.App
	Limiter        ratelimit.Limiter
	TrustedProxies *util.TrustedProxies
	CORSOrigins    []string
	MaxPhotoBytes  int64
}

// Server exposes the resident services over HTTP.
type Server struct {
	app            *app.App
	limiter        ratelimit.Limiter
	trustedProxies *util.TrustedProxies
	corsOrigins    []string
	maxPhotoBytes  int64
	mux            *http.ServeMux
}

// New constructs the server with routes configured. A nil Limiter disables
// throttling.
func New(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, errors.New("server: app required")
	}
	maxPhoto := cfg.MaxPhotoBytes
	if maxPhoto <= 0 {
		maxPhoto = 5 << 20
	}
	s := &Server{
		app:            cfg.App,
		limiter:        cfg.Limiter,
		trustedProxies: cfg.TrustedProxies,
		corsOrigins:    cfg.CORSOrigins,
		maxPhotoBytes:  maxPhoto,
		mux:            http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler with middleware applied.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog(util.WithSecurityHeaders(util.WithCORS(s.corsOrigins, s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/api/options", s.handleOptions)
	s.mux.HandleFunc("/api/facilities", s.handleFacilities)
	s.mux.HandleFunc("/api/facilities/", s.handleFacilityByName)

	s.mux.HandleFunc("/api/bookings", collectionHandler(s, s.app.Bookings, s.app.CreateBooking, s.app.ClearBookings))
	s.mux.HandleFunc("/api/bookings/", recordHandler("/api/bookings/", s.app.Booking, s.app.UpdateBookingStatus))
	s.mux.HandleFunc("/api/visitor-passes", collectionHandler(s, s.app.VisitorPasses, s.app.CreateVisitorPass, s.app.ClearVisitorPasses))
	s.mux.HandleFunc("/api/visitor-passes/", recordHandler[domain.VisitorPass]("/api/visitor-passes/", s.app.VisitorPass, nil))
	s.mux.HandleFunc("/api/complaints", collectionHandler(s, s.app.Complaints, s.app.CreateComplaint, s.app.ClearComplaints))
	s.mux.HandleFunc("/api/complaints/", recordHandler[domain.Complaint]("/api/complaints/", s.app.Complaint, nil))
	s.mux.HandleFunc("/api/renovations", collectionHandler(s, s.app.Renovations, s.app.RequestRenovation, s.app.ClearRenovations))
	s.mux.HandleFunc("/api/renovations/", recordHandler("/api/renovations/", s.app.Renovation, s.app.UpdateRenovationStatus))

	s.mux.HandleFunc("/api/payments", s.handlePayments)
	s.mux.HandleFunc("/api/profile", s.handleProfile)
	s.mux.HandleFunc("/api/profile/photo", s.handleProfilePhoto)
	s.mux.HandleFunc("/api/session", s.handleSession)
	s.mux.HandleFunc("/api/history", s.handleHistory)
	s.mux.HandleFunc("/api/home", s.handleHome)
	s.mux.HandleFunc("/api/reset", s.handleReset)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	keys, err := s.app.Keys(r.Context())
	if err != nil {
		util.LoggerFromContext(r.Context()).Error("health check failed", "err", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "keys": len(keys)})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, domain.AllOptions())
}

func (s *Server) handleFacilities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, domain.FacilityCatalog())
}

func (s *Server) handleFacilityByName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	f, ok := domain.LookupFacility(strings.TrimPrefix(r.URL.Path, "/api/facilities/"))
	if !ok {
		writeError(w, http.StatusNotFound, "facility not found")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handlePayments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		snap, ok, err := s.app.Payment(r.Context())
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "no payment submitted")
			return
		}
		writeJSON(w, http.StatusOK, snap)
	case http.MethodPost:
		if !s.allowRate(w, r) {
			return
		}
		var form domain.PaymentForm
		if !decodeJSON(w, r, &form) {
			return
		}
		snap, err := s.app.PayDeposit(r.Context(), form)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, snap)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		p, err := s.app.Profile(r.Context())
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut:
		if err := s.app.AuthorizeProfileChange(r.Context(), bearerToken(r)); err != nil {
			writeAppError(w, r, err)
			return
		}
		var in domain.ProfileInput
		if !decodeJSON(w, r, &in) {
			return
		}
		p, err := s.app.SaveProfile(r.Context(), in)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleProfilePhoto(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rc, contentType, err := s.app.ProfilePhoto(r.Context())
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = io.Copy(w, rc)
	case http.MethodPut:
		if err := s.app.AuthorizeProfileChange(r.Context(), bearerToken(r)); err != nil {
			writeAppError(w, r, err)
			return
		}
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxPhotoBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "photo too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid upload body")
			return
		}
		p, err := s.app.UploadProfilePhoto(r.Context(), data)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	default:
		methodNotAllowed(w)
	}
}

type loginRequest struct {
	Contact  string `json:"contact"`
	Password string `json:"password"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		p, err := s.app.SessionUser(r.Context(), bearerToken(r))
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPost:
		if !s.allowRate(w, r) {
			return
		}
		var req loginRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		token, err := s.app.Login(r.Context(), req.Contact, req.Password)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"token": token})
	case http.MethodDelete:
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if err := s.app.Logout(token); err != nil {
			writeAppError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	h, err := s.app.History(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	home, err := s.app.Home(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, home)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	report := s.app.Reset(r.Context())
	status := http.StatusOK
	if !report.OK {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, report)
}

func (s *Server) allowRate(w http.ResponseWriter, r *http.Request) bool {
	if s.limiter == nil {
		return true
	}
	key := r.URL.Path + "|" + util.ClientIP(r, s.trustedProxies)
	if s.limiter.Allow(key) {
		return true
	}
	util.LoggerFromContext(r.Context()).Warn("submission rate limited", "path", r.URL.Path)
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, "too many submissions, try again later")
	return false
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeAppError maps application and store failures to HTTP responses.
// Storage failures are logged with their cause and reported generically.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Message, "field": verr.Field})
		return
	}
	var statusErr *domain.InvalidStatusError
	if errors.As(err, &statusErr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": statusErr.Error(), "field": "status"})
		return
	}
	switch {
	case errors.Is(err, records.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, records.ErrStatusUnsupported):
		writeError(w, http.StatusBadRequest, "record has no status")
	case errors.Is(err, records.ErrDuplicateID):
		writeError(w, http.StatusConflict, "duplicate record id")
	case errors.Is(err, app.ErrNoProfile):
		writeError(w, http.StatusNotFound, "profile not set up")
	case errors.Is(err, app.ErrNoPhoto):
		writeError(w, http.StatusNotFound, "no profile photo")
	case errors.Is(err, app.ErrPhotoTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "photo too large")
	case errors.Is(err, app.ErrUnsupportedPhoto):
		writeError(w, http.StatusUnsupportedMediaType, "photo must be JPEG, PNG or WebP")
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid contact or password")
	case errors.Is(err, app.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		util.LoggerFromContext(r.Context()).Error("request failed", "kind", records.KindOf(err), "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
