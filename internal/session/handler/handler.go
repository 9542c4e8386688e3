// Package handler exposes a checkout session over JSON so a hosting UI can
// drive it.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pos/internal/session"
	"pos/pkg/platform/httputil"
	"pos/pkg/requestcontext"
)

// Session is the subset of the session controller the API drives.
type Session interface {
	View() session.View
	EnterCode(code string) session.View
	Search(ctx context.Context, code string) session.View
	AddToCart(ctx context.Context) (session.View, error)
	Purchase(ctx context.Context) (session.View, error)
	DismissPopup() session.View
}

type Handler struct {
	session Session
	logger  *slog.Logger
}

func New(s Session, logger *slog.Logger) *Handler {
	return &Handler{session: s, logger: logger}
}

// Register mounts the session routes on r. Every route answers with the
// current view.
func (h *Handler) Register(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Get("/", h.handleView)
		r.Put("/code", h.handleEnterCode)
		r.Post("/search", h.handleSearch)
		r.Post("/cart", h.handleAddToCart)
		r.Post("/purchase", h.handlePurchase)
		r.Post("/popup/dismiss", h.handleDismissPopup)
	})
}

type codeRequest struct {
	Code *string `json:"code"`
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.session.View())
}

func (h *Handler) handleEnterCode(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.DecodeJSON[codeRequest](r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	code := ""
	if req.Code != nil {
		code = *req.Code
	}
	httputil.WriteJSON(w, http.StatusOK, h.session.EnterCode(code))
}

// handleSearch searches for the body's code, or the current input when the
// body omits it.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.DecodeJSON[codeRequest](r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	code := h.session.View().InputCode
	if req.Code != nil {
		code = *req.Code
	}
	httputil.WriteJSON(w, http.StatusOK, h.session.Search(r.Context(), code))
}

func (h *Handler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	v, err := h.session.AddToCart(r.Context())
	if err != nil {
		h.rejected(w, r, "add_to_cart", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

// handlePurchase blocks until the sales service answers. A failed purchase
// is still a 200; the view carries the error.
func (h *Handler) handlePurchase(w http.ResponseWriter, r *http.Request) {
	v, err := h.session.Purchase(r.Context())
	if err != nil {
		h.rejected(w, r, "purchase", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleDismissPopup(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.session.DismissPopup())
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	h.logger.WarnContext(ctx, "invalid session request",
		"request_id", requestcontext.RequestID(ctx),
		"path", r.URL.Path,
		"error", err.Error(),
	)
	httputil.WriteError(w, err)
}

func (h *Handler) rejected(w http.ResponseWriter, r *http.Request, action string, err error) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "session action rejected",
		"request_id", requestcontext.RequestID(ctx),
		"action", action,
		"error", err.Error(),
	)
	httputil.WriteError(w, err)
}
