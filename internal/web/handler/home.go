package handler

import (
	"log/slog"
	"net/http"

	"github.com/tkdr/teamgate/internal/model"
	"github.com/tkdr/teamgate/internal/services/membership"
	"github.com/tkdr/teamgate/internal/web/middleware"
	"github.com/tkdr/teamgate/internal/web/templates"
)

// HomeHandler handles the landing page
type HomeHandler struct {
	membership *membership.Controller
	adminID    model.UserID
	logger     *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(ctrl *membership.Controller, adminID model.UserID, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		membership: ctrl,
		adminID:    adminID,
		logger:     logger,
	}
}

// Home renders the landing page for the visitor's current state
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	state, err := h.membership.ResolveState(r.Context(), sess)
	if err != nil {
		// The landing page still renders; the store hiccup only degrades
		// the shown state.
		h.logger.Error("resolving visitor state", slog.String("error", err.Error()))
	}

	var userName string
	if sess.Authenticated() {
		userName = sess.UserName
	}

	render(w, r, templates.Home(templates.HomeData{
		PageData: templates.PageData{
			Title:    "Home",
			UserName: userName,
		},
		State: state,
		Admin: sess.Authenticated() && sess.UserID == h.adminID,
	}))
}
