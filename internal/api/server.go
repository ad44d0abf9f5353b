// Package api exposes the operator-facing configuration transport: one
// validation endpoint per settings field plus the save endpoint. It is the
// HTTP shape of the host's form-validation callbacks; rendering the form
// itself is the host's business.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/cistack/artifactstore/internal/logger"
	"github.com/cistack/artifactstore/internal/settings"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Server routes field checks and saves to a settings store.
type Server struct {
	store  *settings.Store
	log    *logger.Logger
	router chi.Router
}

// NewServer builds the router around store.
func NewServer(store *settings.Store, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{store: store, log: log}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Get("/check/{field}", s.handleCheck)
	r.Get("/settings", s.handleSettings)
	r.Post("/configure", s.handleConfigure)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// checkResponse is the outcome of one field-level validation: ok, or an
// error message embedding the provider's diagnostic text.
type checkResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// handleCheck validates a single field value. The value is recorded in the
// draft even when validation fails, so the operator keeps editing from
// where they left off.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")
	value := r.URL.Query().Get("value")
	ctx := r.Context()

	var err error
	switch field {
	case "access-key":
		err = s.store.CheckAccessKey(ctx, value)
	case "secret-key":
		err = s.store.CheckSecretKey(ctx, value)
	case "bucket-name":
		err = s.store.CheckBucketName(ctx, value)
	case "download-domain":
		err = s.store.CheckDownloadDomain(value)
	case "api-domain":
		err = s.store.CheckAPIDomain(value)
	case "metadata-domain":
		err = s.store.CheckMetadataDomain(value)
	case "lookup-domain":
		err = s.store.CheckLookupDomain(value)
	default:
		writeJSON(w, http.StatusNotFound, checkResponse{Message: "unknown field " + field})
		return
	}

	if err != nil {
		writeJSON(w, http.StatusOK, checkResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, checkResponse{OK: true})
}

// configureRequest is the save payload: the full settings form.
type configureRequest struct {
	AccessKey         string `json:"accessKey"`
	SecretKey         string `json:"secretKey"`
	BucketName        string `json:"bucketName"`
	ObjectNamePrefix  string `json:"objectNamePrefix"`
	DownloadDomain    string `json:"downloadDomain"`
	APIDomain         string `json:"apiDomain"`
	MetadataDomain    string `json:"metadataDomain"`
	LookupDomain      string `json:"lookupDomain"`
	UseHTTPS          bool   `json:"useHTTPS"`
	InfrequentStorage bool   `json:"infrequentStorage"`
}

// handleConfigure records the whole form in the draft and applies it:
// remote validation, backend build, singleton registration, persistence.
// A failed apply leaves the previously persisted configuration untouched.
func (s *Server) handleConfigure(w http.ResponseWriter, r *http.Request) {
	var req configureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, checkResponse{Message: "invalid request body"})
		return
	}
	ctx := r.Context()

	// Record every field first; Apply re-validates the complete draft.
	s.store.CheckAccessKey(ctx, req.AccessKey)
	s.store.CheckSecretKey(ctx, req.SecretKey)
	s.store.CheckBucketName(ctx, req.BucketName)
	s.store.CheckDownloadDomain(req.DownloadDomain)
	s.store.CheckAPIDomain(req.APIDomain)
	s.store.CheckMetadataDomain(req.MetadataDomain)
	s.store.CheckLookupDomain(req.LookupDomain)
	s.store.SetObjectNamePrefix(req.ObjectNamePrefix)
	s.store.SetUseHTTPS(req.UseHTTPS)
	s.store.SetInfrequentStorage(req.InfrequentStorage)

	if err := s.store.Apply(ctx); err != nil {
		s.log.ErrorWith("configuration save failed", err)
		writeJSON(w, http.StatusUnprocessableEntity, checkResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, checkResponse{OK: true})
}

// handleSettings reports the current draft with the secret redacted.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	draft := s.store.Draft()
	draft.SecretKey = ""
	writeJSON(w, http.StatusOK, draft)
}

// requestID tags every request and its log line with a fresh UUID.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		s.log.With().
			Str("requestID", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger().
			Debug("request")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
