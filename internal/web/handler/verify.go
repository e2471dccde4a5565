package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/tkdr/teamgate/internal/model"
	"github.com/tkdr/teamgate/internal/services/identity"
	"github.com/tkdr/teamgate/internal/services/membership"
	"github.com/tkdr/teamgate/internal/web/middleware"
	"github.com/tkdr/teamgate/internal/web/templates"
)

// VerifyHandler handles the government identity verification flow
type VerifyHandler struct {
	membership *membership.Controller
	logger     *slog.Logger
}

// NewVerifyHandler creates a new VerifyHandler
func NewVerifyHandler(ctrl *membership.Controller, logger *slog.Logger) *VerifyHandler {
	return &VerifyHandler{
		membership: ctrl,
		logger:     logger,
	}
}

// Show renders the verification form, or short-circuits based on the
// visitor's stored record: banned accounts go to the banned page, verified
// accounts get a fresh team-join attempt (covering players who left the
// team after verifying)
func (h *VerifyHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	state, err := h.membership.ResolveState(r.Context(), sess)
	if err != nil {
		h.logger.Error("resolving visitor state", slog.String("error", err.Error()))
		http.Redirect(w, r, "/messages/error", http.StatusSeeOther)
		return
	}

	switch state {
	case model.StateBanned:
		http.Redirect(w, r, "/messages/banned", http.StatusSeeOther)
	case model.StateVerified:
		ok, err := h.membership.RejoinTeam(r.Context(), sess)
		if err != nil {
			h.logger.Error("rejoining team", slog.String("error", err.Error()))
			http.Redirect(w, r, "/messages/error", http.StatusSeeOther)
			return
		}
		if !ok {
			http.Redirect(w, r, "/messages/error", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/messages/success", http.StatusSeeOther)
	default:
		render(w, r, templates.VerifyForm(templates.VerifyFormData{
			PageData: templates.PageData{
				Title:    "Identity verification",
				UserName: sess.UserName,
			},
			BirthYear: h.membership.DefaultBirthYear(),
		}))
	}
}

// Submit runs the verification workflow on the posted form
func (h *VerifyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	req, ok := parseVerifyForm(r)
	if !ok {
		http.Redirect(w, r, "/verify/gov", http.StatusSeeOther)
		return
	}

	outcome, err := h.membership.SubmitVerification(r.Context(), sess, req)
	if err != nil {
		h.logger.Error("verification workflow failed",
			slog.String("userId", string(sess.UserID)),
			slog.String("error", err.Error()))
	}

	switch outcome {
	case membership.OutcomeSuccess:
		http.Redirect(w, r, "/messages/success", http.StatusSeeOther)
	case membership.OutcomeBanned:
		http.Redirect(w, r, "/messages/banned", http.StatusSeeOther)
	case membership.OutcomeRetry:
		http.Redirect(w, r, "/verify/gov", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/messages/error", http.StatusSeeOther)
	}
}

func parseVerifyForm(r *http.Request) (identity.Request, bool) {
	if err := r.ParseForm(); err != nil {
		return identity.Request{}, false
	}

	nationalID := strings.TrimSpace(r.FormValue("national_id"))
	firstName := strings.TrimSpace(r.FormValue("first_name"))
	lastName := strings.TrimSpace(r.FormValue("last_name"))
	birthYear, err := strconv.Atoi(strings.TrimSpace(r.FormValue("birth_year")))

	if err != nil || nationalID == "" || firstName == "" || lastName == "" {
		return identity.Request{}, false
	}

	return identity.Request{
		NationalID: nationalID,
		FirstName:  firstName,
		LastName:   lastName,
		BirthYear:  birthYear,
	}, true
}
