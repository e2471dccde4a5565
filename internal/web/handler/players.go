package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/tkdr/teamgate/internal/model"
	"github.com/tkdr/teamgate/internal/services/membership"
	"github.com/tkdr/teamgate/internal/web/middleware"
	"github.com/tkdr/teamgate/internal/web/templates"
)

// PlayersHandler serves the admin moderation console
type PlayersHandler struct {
	membership *membership.Controller
	logger     *slog.Logger
}

// NewPlayersHandler creates a new PlayersHandler
func NewPlayersHandler(ctrl *membership.Controller, logger *slog.Logger) *PlayersHandler {
	return &PlayersHandler{
		membership: ctrl,
		logger:     logger,
	}
}

// Waiting lists verified players not yet on the team roster
func (h *PlayersHandler) Waiting(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	players, err := h.membership.WaitingPlayers(r.Context(), sess.AuthToken)
	if err != nil {
		h.logger.Error("listing waiting players", slog.String("error", err.Error()))
		http.Redirect(w, r, "/messages/error", http.StatusSeeOther)
		return
	}

	h.renderList(w, r, "Waiting players", players, "ban")
}

// Verified lists verified players present on the team roster
func (h *PlayersHandler) Verified(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	players, err := h.membership.VerifiedPlayers(r.Context(), sess.AuthToken)
	if err != nil {
		h.logger.Error("listing verified players", slog.String("error", err.Error()))
		http.Redirect(w, r, "/messages/error", http.StatusSeeOther)
		return
	}

	h.renderList(w, r, "Verified players", players, "ban")
}

// Banned lists every banned record, on or off the roster
func (h *PlayersHandler) Banned(w http.ResponseWriter, r *http.Request) {
	players, err := h.membership.BannedPlayers(r.Context())
	if err != nil {
		h.logger.Error("listing banned players", slog.String("error", err.Error()))
		http.Redirect(w, r, "/messages/error", http.StatusSeeOther)
		return
	}

	h.renderList(w, r, "Banned players", players, "unban")
}

// Ban kicks a member and flags the record. The redirect does not depend on
// either write succeeding; failures are only logged.
func (h *PlayersHandler) Ban(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	userID := formUserID(r)
	if userID != "" {
		h.membership.Ban(r.Context(), userID, sess.AuthToken)
	}

	http.Redirect(w, r, "/players/verified", http.StatusSeeOther)
}

// Unban clears the banned flag on a record
func (h *PlayersHandler) Unban(w http.ResponseWriter, r *http.Request) {
	userID := formUserID(r)
	if userID == "" {
		http.Redirect(w, r, "/players/banned", http.StatusSeeOther)
		return
	}

	if err := h.membership.Unban(r.Context(), userID); err != nil {
		h.logger.Error("unbanning player",
			slog.String("userId", string(userID)),
			slog.String("error", err.Error()))
		http.Redirect(w, r, "/messages/error", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/players/banned", http.StatusSeeOther)
}

func (h *PlayersHandler) renderList(w http.ResponseWriter, r *http.Request, heading string, players []*model.PlayerRecord, action string) {
	sess := middleware.GetSession(r.Context())

	render(w, r, templates.Players(templates.PlayersData{
		PageData: templates.PageData{
			Title:    heading,
			UserName: sess.UserName,
		},
		Heading: heading,
		Players: players,
		Action:  action,
	}))
}

func formUserID(r *http.Request) model.UserID {
	if err := r.ParseForm(); err != nil {
		return ""
	}
	return model.UserID(strings.TrimSpace(r.FormValue("user_id")))
}
