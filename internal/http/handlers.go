package http

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-lookup/internal/lifecycle"
	"github.com/kjstillabower/weather-lookup/internal/observability"
	"github.com/kjstillabower/weather-lookup/internal/service"
	"github.com/kjstillabower/weather-lookup/internal/traffic"
	"github.com/kjstillabower/weather-lookup/internal/view"
)

// SessionCookie names the cookie that keys a visitor's view state.
const SessionCookie = "wl_session"

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// HealthConfig holds inputs for the health handler.
type HealthConfig struct {
	// Window is how far back lookup outcomes are counted.
	Window time.Duration
	// SessionPing, when set, is called to check session store reachability. Used when backend is memcached.
	SessionPing func() error
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	lookups          *service.LookupService
	outcomes         *traffic.Tracker
	healthConfig     *HealthConfig
	logger           *zap.Logger
	sessionTTL       time.Duration
	healthStatusMu   sync.Mutex
	healthStatusPrev string
}

// NewHandler returns a new Handler. outcomes may be nil, in which case health
// reports zero lookups.
func NewHandler(
	lookups *service.LookupService,
	outcomes *traffic.Tracker,
	healthConfig *HealthConfig,
	logger *zap.Logger,
	sessionTTL time.Duration,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		lookups:      lookups,
		outcomes:     outcomes,
		healthConfig: healthConfig,
		logger:       logger,
		sessionTTL:   sessionTTL,
	}
}

// pageData is the template input. Location is echoed back into the input field.
type pageData struct {
	Page     view.Page
	Location string
}

// GetIndex handles GET /: renders the visitor's current state.
func (h *Handler) GetIndex(w http.ResponseWriter, r *http.Request) {
	id := h.sessionID(w, r)
	page := h.lookups.Current(r.Context(), id)
	h.renderPage(w, r, pageData{Page: page, Location: page.Input})
}

// PostIndex handles POST /: submits the location field and renders the result.
// An empty field is submitted like any other value.
func (h *Handler) PostIndex(w http.ResponseWriter, r *http.Request) {
	id := h.sessionID(w, r)
	location := r.PostFormValue("location")
	page := h.lookups.Submit(r.Context(), id, location)
	h.renderPage(w, r, pageData{Page: page, Location: location})
}

// GetWeatherAPI handles GET /api/weather?location=. It does not touch the session.
func (h *Handler) GetWeatherAPI(w http.ResponseWriter, r *http.Request) {
	page := h.lookups.Lookup(r.Context(), r.URL.Query().Get("location"))
	if page.Status == view.StatusError {
		writeError(w, r, http.StatusNotFound, "LOCATION_NOT_FOUND", page.Message)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := pageTemplate.Execute(w, data); err != nil {
		observability.LoggerFromContext(r.Context()).Error("render page failed", zap.Error(err))
	}
}

// sessionID returns the visitor's session ID, issuing a new cookie when the
// request carries none.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

type healthResult struct {
	status     string
	statusCode int
	reason     string
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	result := h.computeHealthStatus(checks)

	h.healthStatusMu.Lock()
	prev := h.healthStatusPrev
	if prev != "" && prev != result.status {
		h.logger.Info("health status transition",
			zap.String("previous_status", prev),
			zap.String("current_status", result.status),
			zap.String("reason", result.reason))
	}
	h.healthStatusPrev = result.status
	h.healthStatusMu.Unlock()

	var found, notFound int
	if h.outcomes != nil && h.healthConfig != nil {
		found, notFound = h.outcomes.Counts(h.healthConfig.Window)
	}
	writeJSON(w, result.statusCode, map[string]interface{}{
		"status":  result.status,
		"service": "weather-lookup",
		"version": "dev",
		"checks":  checks,
		"lookups": map[string]int{
			"found":    found,
			"notFound": notFound,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// computeHealthStatus evaluates shutting-down first, then session store reachability.
// Lookup failures never degrade health: "Location not found" is a normal outcome.
func (h *Handler) computeHealthStatus(checks map[string]string) healthResult {
	if lifecycle.IsShuttingDown() {
		return healthResult{"shutting-down", http.StatusServiceUnavailable, "signal"}
	}
	if h.healthConfig != nil && h.healthConfig.SessionPing != nil {
		if err := h.healthConfig.SessionPing(); err != nil {
			checks["sessionStore"] = "unhealthy"
			return healthResult{"degraded", http.StatusServiceUnavailable, "session_store_unreachable"}
		}
		checks["sessionStore"] = "healthy"
	}
	return healthResult{"healthy", http.StatusOK, ""}
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard error format with code, message,
// and requestId (correlation ID) if available in request context.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   message,
			"requestId": observability.CorrelationID(r.Context()),
		},
	})
}
