package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/scenesnap/scenesnap/pkg/errors"
	"github.com/scenesnap/scenesnap/pkg/pipeline"
	"github.com/scenesnap/scenesnap/pkg/snapshot"
	"github.com/scenesnap/scenesnap/pkg/store"
)

// maxRequestBody caps POST bodies at 32 MiB, matching the remote fetch limit.
const maxRequestBody = 32 << 20

// handleHealth responds to liveness probes.
// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

// handleCreateSnapshot runs the pipeline on the posted options and returns
// the snapshot payload. With ?persist=1 the envelope is archived and the
// record id is exposed via the Location header.
// POST /v1/snapshots
func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&opts); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if r.URL.Query().Get("persist") == "1" && s.store != nil {
		rec := store.NewRecord(result.Envelope)
		if err := s.store.Save(r.Context(), rec); err != nil {
			s.logger.Error("persist snapshot", "error", err)
			s.writeError(w, err)
			return
		}
		w.Header().Set("Location", "/v1/snapshots/"+rec.ID)
		w.Header().Set("X-Snapshot-ID", rec.ID)
	}

	_, _ = w.Write(result.Artifacts[pipeline.FormatJSON])
}

// handleGetSnapshot fetches one archived snapshot.
// GET /v1/snapshots/{id}
func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, store.ErrNotFound)
		return
	}

	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, rec)
}

// handleListSnapshots lists archived snapshots, newest first.
// GET /v1/snapshots?limit=N
func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusOK, []store.Record{})
		return
	}

	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", q))
			return
		}
		limit = n
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}

	s.writeJSON(w, http.StatusOK, recs)
}

// writeJSON writes v as a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError maps an error to a status code and the structured error payload.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, snapshot.ErrorPayload{Error: errors.UserMessage(err)})
}

// statusForError maps error codes to HTTP status codes.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDocument,
		errors.ErrCodeInvalidSelector, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeEmptySelection:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeSnapshotNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
