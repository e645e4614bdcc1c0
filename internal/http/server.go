package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"facemark/identity/internal/auth"
	"facemark/identity/internal/config"
	"facemark/identity/internal/identity"
	"facemark/identity/internal/model"
)

type Server struct {
	cfg config.Config
	svc *identity.Service
	log *slog.Logger
}

func NewServer(cfg config.Config, svc *identity.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{cfg: cfg, svc: svc, log: log}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(withRequestLogging(s.log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/teachers/register", s.handleRegister)
	r.Post("/teachers/login", s.handleLogin)
	r.Get("/teachers/profile", s.handleProfile)
	r.With(s.authMiddleware).Get("/teachers/me", s.handleMe)

	return r
}

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	EmployeeID string `json:"employeeId"`
	Department string `json:"department"`
}

type teacherResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	EmployeeID string    `json:"employeeId"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	teacherResponse
	Token string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	teacher, err := s.svc.Register(r.Context(), identity.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		EmployeeID: req.EmployeeID,
		Department: req.Department,
	})
	if err != nil {
		registrations.WithLabelValues(outcomeLabel(err)).Inc()
		s.writeServiceError(w, r, err)
		return
	}

	registrations.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusCreated, toTeacherResponse(teacher))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	teacher, token, err := s.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		logins.WithLabelValues(outcomeLabel(err)).Inc()
		s.writeServiceError(w, r, err)
		return
	}

	logins.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, loginResponse{
		teacherResponse: toTeacherResponse(teacher),
		Token:           token,
	})
}

// handleProfile reproduces the caller-supplied-id contract: the identifier
// arrives as a query parameter with no proof of identity. The authenticated
// variant is handleMe; hardening should fold this route into it.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("teacherId"))
	if raw == "" {
		writeMessage(w, http.StatusBadRequest, "Teacher ID is required")
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Teacher ID must be numeric")
		return
	}

	teacher, err := s.svc.Profile(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTeacherResponse(teacher))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeMessage(w, http.StatusUnauthorized, "Missing token")
		return
	}

	teacher, err := s.svc.Profile(r.Context(), claims.TeacherID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTeacherResponse(teacher))
}

type claimsKey struct{}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "Missing token")
			return
		}

		claims, err := auth.ParseToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, token)
		if err != nil {
			// Expiry stays distinguishable so clients can silently
			// re-authenticate instead of showing a generic failure.
			if errors.Is(err, auth.ErrTokenExpired) {
				writeMessage(w, http.StatusUnauthorized, "Token expired")
				return
			}
			writeMessage(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims
}

// writeServiceError is the single point where internal errors become client
// responses. Messages are enumerated per kind; internal detail only goes to
// the log.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve identity.ValidationError
	var ce identity.ConflictError
	switch {
	case errors.As(err, &ve):
		writeMessage(w, http.StatusBadRequest, ve.Msg)
	case errors.As(err, &ce):
		writeMessage(w, http.StatusBadRequest, conflictMessage(ce))
	case errors.Is(err, identity.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, identity.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Teacher not found")
	case errors.Is(err, identity.ErrStoreUnavailable):
		s.log.Error("store unavailable", "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		s.log.Error("internal error", "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func conflictMessage(ce identity.ConflictError) string {
	switch ce.Field {
	case identity.FieldEmployeeID:
		return "Employee ID already registered. Please contact administrator."
	default:
		return "Email already registered. Please use a different email address."
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, identity.ErrValidation), identity.IsConflict(err):
		return "rejected"
	case errors.Is(err, identity.ErrInvalidCredentials):
		return "denied"
	default:
		return "error"
	}
}

func toTeacherResponse(t model.Teacher) teacherResponse {
	return teacherResponse{
		ID:         t.ID,
		Name:       t.Name,
		Email:      t.Email,
		EmployeeID: t.EmployeeID,
		Department: t.Department,
		CreatedAt:  t.CreatedAt.UTC(),
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
