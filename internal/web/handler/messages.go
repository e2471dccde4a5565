package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tkdr/teamgate/internal/web/middleware"
	"github.com/tkdr/teamgate/internal/web/templates"
)

// MessagesHandler serves the static result pages
type MessagesHandler struct{}

// NewMessagesHandler creates a new MessagesHandler
func NewMessagesHandler() *MessagesHandler {
	return &MessagesHandler{}
}

// Show renders the result page named in the route
func (h *MessagesHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	kind := templates.MessageKind(mux.Vars(r)["kind"])

	var title string
	switch kind {
	case templates.MessageSuccess:
		title = "Welcome"
	case templates.MessageBanned:
		title = "Banned"
	default:
		title = "Error"
	}

	var userName string
	if sess != nil {
		userName = sess.UserName
	}

	render(w, r, templates.Message(templates.PageData{
		Title:    title,
		UserName: userName,
	}, kind))
}
