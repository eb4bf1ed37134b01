package devserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bliic/bliic/internal/model"
)

// Handler holds dependencies for the dev server's HTTP handlers.
type Handler struct {
	store   *Store
	baseURL string
	logger  *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(store *Store, baseURL string, logger *slog.Logger) *Handler {
	return &Handler{
		store:   store,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger.With("component", "devserver.handler"),
	}
}

// loginRequest mirrors the hosted API's credentials payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest mirrors the hosted API's registration payload.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// loginResponse mirrors the hosted API's login response.
type loginResponse struct {
	AccessToken string     `json:"access_token"`
	User        model.User `json:"user"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, token, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredential) {
			writeError(w, http.StatusUnauthorized, "Incorrect email or password.")
			return
		}
		h.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	h.logger.Info("login", "user_id", user.ID)
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token, User: *user})
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "A valid email is required.")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters.")
		return
	}

	user, err := h.store.CreateUser(req.Email, req.Password, req.Name, model.PlanFree, model.RoleUser)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			writeError(w, http.StatusConflict, "An account with this email already exists.")
			return
		}
		h.logger.Error("register failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	// Registration logs the account in, matching the hosted API.
	_, token, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		h.logger.Error("post-register login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	h.logger.Info("account registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, loginResponse{AccessToken: token, User: *user})
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, user)
}

// createLinkRequest mirrors the hosted API's link creation payload.
type createLinkRequest struct {
	Destination string     `json:"destination"`
	CustomCode  string     `json:"custom_code"`
	Title       string     `json:"title"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// updateLinkRequest mirrors the hosted API's link patch payload.
type updateLinkRequest struct {
	Destination *string    `json:"destination"`
	Title       *string    `json:"title"`
	Enabled     *bool      `json:"enabled"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// CreateLink handles POST /api/links.
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req createLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if !validDestination(req.Destination) {
		writeError(w, http.StatusBadRequest, "Destination must be a valid http(s) URL.")
		return
	}
	if req.ExpiresAt != nil && req.ExpiresAt.Before(time.Now()) {
		writeError(w, http.StatusBadRequest, "Expiry must be in the future.")
		return
	}

	link, err := h.store.CreateLink(user.ID, req.Destination, req.CustomCode, req.Title, req.ExpiresAt, h.baseURL)
	if err != nil {
		if errors.Is(err, ErrCodeTaken) {
			writeError(w, http.StatusConflict, "This short code is already taken.")
			return
		}
		h.logger.Error("create link failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

// ListLinks handles GET /api/links.
func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	links := h.store.LinksByOwner(user.ID)
	if links == nil {
		links = []model.Link{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"links": links})
}

// GetLink handles GET /api/links/{id}.
func (h *Handler) GetLink(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	link, err := h.store.LinkByID(user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Link not found.")
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// UpdateLink handles PATCH /api/links/{id}.
func (h *Handler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req updateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Destination != nil && !validDestination(*req.Destination) {
		writeError(w, http.StatusBadRequest, "Destination must be a valid http(s) URL.")
		return
	}

	link, err := h.store.UpdateLink(user.ID, chi.URLParam(r, "id"), req.Destination, req.Title, req.Enabled, req.ExpiresAt)
	if err != nil {
		writeError(w, http.StatusNotFound, "Link not found.")
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// DeleteLink handles DELETE /api/links/{id}.
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	if err := h.store.DeleteLink(user.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "Link not found.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// createQRCodeRequest mirrors the hosted API's QR creation payload.
type createQRCodeRequest struct {
	Data   string         `json:"data"`
	Label  string         `json:"label"`
	Format model.QRFormat `json:"format"`
}

// CreateQRCode handles POST /api/qrcodes.
func (h *Handler) CreateQRCode(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req createQRCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Data == "" {
		writeError(w, http.StatusBadRequest, "QR data is required.")
		return
	}

	code := h.store.CreateQRCode(user.ID, req.Data, req.Label, req.Format, h.baseURL)
	writeJSON(w, http.StatusCreated, code)
}

// ListQRCodes handles GET /api/qrcodes.
func (h *Handler) ListQRCodes(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	codes := h.store.QRCodesByOwner(user.ID)
	if codes == nil {
		codes = []model.QRCode{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"qrcodes": codes})
}

// DeleteQRCode handles DELETE /api/qrcodes/{id}.
func (h *Handler) DeleteQRCode(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	if err := h.store.DeleteQRCode(user.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "QR code not found.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFiles handles GET /api/files.
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	files := h.store.FilesByOwner(user.ID)
	if files == nil {
		files = []model.FileShare{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

// GetFile handles GET /api/files/{id}.
func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	file, err := h.store.FileByID(user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found.")
		return
	}
	writeJSON(w, http.StatusOK, file)
}

// DeleteFile handles DELETE /api/files/{id}.
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	if err := h.store.DeleteFile(user.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "File not found.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Subscription handles GET /api/billing/subscription.
func (h *Handler) Subscription(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, h.store.SubscriptionFor(user.ID))
}

// checkoutRequest mirrors the hosted API's checkout payload.
type checkoutRequest struct {
	Plan model.Plan `json:"plan"`
}

// CreateCheckout handles POST /api/billing/checkout. The dev server hands
// back a fake hosted-payment URL; nothing is charged.
func (h *Handler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if !req.Plan.IsValid() || !req.Plan.IsPaid() {
		writeError(w, http.StatusBadRequest, "A paid plan is required for checkout.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"url": h.baseURL + "/checkout/" + string(req.Plan),
	})
}

// ListUsers handles GET /api/admin/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"users": h.store.Users()})
}

// updateUserRequest mirrors the hosted API's admin user patch payload.
type updateUserRequest struct {
	Plan *model.Plan `json:"plan"`
	Role *model.Role `json:"role"`
}

// UpdateUser handles PATCH /api/admin/users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Plan != nil && !req.Plan.IsValid() {
		writeError(w, http.StatusBadRequest, "Unknown plan.")
		return
	}
	if req.Role != nil && !req.Role.IsValid() {
		writeError(w, http.StatusBadRequest, "Unknown role.")
		return
	}

	user, err := h.store.UpdateUser(chi.URLParam(r, "id"), req.Plan, req.Role)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found.")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Resource not found.")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
}

// validDestination checks for an absolute http(s) URL.
func validDestination(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		_ = err
	}
}

// writeError writes the hosted API's error payload shape.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
