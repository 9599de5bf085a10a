package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"condocare/internal/util"
	"condocare/pkg/records"
)

// unavailableHeader names the collection key that could not be read when a
// list is served empty.
const unavailableHeader = "X-Collection-Unavailable"

// collectionHandler serves GET (list), POST (create) and DELETE (clear) for
// one record collection. A list that cannot be read is served empty with
// unavailableHeader set.
func collectionHandler[T any](
	s *Server,
	list func(context.Context) ([]T, error),
	create func(context.Context, T) (T, error),
	clearAll func(context.Context) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			items, err := list(r.Context())
			if err != nil {
				var se *records.StoreError
				kind := records.KindOf(err)
				if !errors.As(err, &se) || (kind != records.ErrStorageRead && kind != records.ErrCorruptData) {
					writeAppError(w, r, err)
					return
				}
				util.LoggerFromContext(r.Context()).Warn("collection unavailable", "key", se.Key, "kind", kind, "err", err)
				w.Header().Set(unavailableHeader, se.Key)
				items = []T{}
			}
			writeJSON(w, http.StatusOK, items)
		case http.MethodPost:
			if !s.allowRate(w, r) {
				return
			}
			var rec T
			if !decodeJSON(w, r, &rec) {
				return
			}
			saved, err := create(r.Context(), rec)
			if err != nil {
				writeAppError(w, r, err)
				return
			}
			writeJSON(w, http.StatusCreated, saved)
		case http.MethodDelete:
			if err := clearAll(r.Context()); err != nil {
				writeAppError(w, r, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			methodNotAllowed(w)
		}
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

// recordHandler serves GET and, when update is non-nil, PATCH of the status
// for a single record under prefix.
func recordHandler[T any](
	prefix string,
	find func(context.Context, string) (T, error),
	update func(context.Context, string, string) (T, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, prefix)
		if id == "" || strings.Contains(id, "/") {
			http.NotFound(w, r)
			return
		}
		switch {
		case r.Method == http.MethodGet:
			rec, err := find(r.Context(), id)
			if err != nil {
				writeAppError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, rec)
		case r.Method == http.MethodPatch && update != nil:
			var req statusRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			rec, err := update(r.Context(), id, strings.TrimSpace(req.Status))
			if err != nil {
				writeAppError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, rec)
		default:
			methodNotAllowed(w)
		}
	}
}
