package templates

import (
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/tkdr/teamgate/internal/model"
)

// HomeData holds data for the home page
type HomeData struct {
	PageData
	State model.VisitorState
	Admin bool
}

// Home renders the landing page with actions for the visitor's state
func Home(data HomeData) templ.Component {
	return page(data.PageData, func(w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>Team Gate</h1>\n<p>Membership in the team requires a one-time identity check.</p>\n"); err != nil {
			return err
		}

		switch data.State {
		case model.StateAnonymous:
			if _, err := io.WriteString(w, `<p><a href="/auth?returnUrl=/verify/gov">Log in with your chess account to get started</a></p>`+"\n"); err != nil {
				return err
			}
		case model.StateBanned:
			if _, err := io.WriteString(w, `<p><a href="/messages/banned">Your account is banned from the team</a></p>`+"\n"); err != nil {
				return err
			}
		default:
			if _, err := io.WriteString(w, `<p><a href="/verify/gov">Verify your identity</a></p>`+"\n"); err != nil {
				return err
			}
		}

		if data.Admin {
			if _, err := io.WriteString(w, `<p><a href="/players/waiting">Admin: waiting players</a></p>`+"\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// VerifyFormData holds data for the verification form
type VerifyFormData struct {
	PageData
	// BirthYear is the minimum-age hint prefilled in the year field
	BirthYear int
}

// VerifyForm renders the identity verification form
func VerifyForm(data VerifyFormData) templ.Component {
	return page(data.PageData, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>Identity verification</h1>
<form method="post" action="/verify/gov">
<label>National ID <input type="text" name="national_id" required maxlength="11"></label>
<label>First name <input type="text" name="first_name" required></label>
<label>Last name <input type="text" name="last_name" required></label>
<label>Birth year <input type="number" name="birth_year" value="%d" required></label>
<button type="submit">Verify</button>
</form>
`, data.BirthYear)
		return err
	})
}

// MessageKind selects one of the three static result pages
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageBanned  MessageKind = "banned"
	MessageError   MessageKind = "error"
)

// Message renders a static result page
func Message(data PageData, kind MessageKind) templ.Component {
	return page(data, func(w io.Writer) error {
		var heading, text string
		switch kind {
		case MessageSuccess:
			heading = "Welcome to the team"
			text = "Your identity was verified and you have joined the team."
		case MessageBanned:
			heading = "Banned"
			text = "This identity has been banned from the team. Contact the team administrator if you believe this is a mistake."
		default:
			heading = "Something went wrong"
			text = "The request could not be completed. Please try again later."
		}
		_, err := fmt.Fprintf(w, "<h1>%s</h1>\n<p>%s</p>\n<p><a href=\"/\">Back to home</a></p>\n",
			templ.EscapeString(heading), templ.EscapeString(text))
		return err
	})
}

// PlayersData holds data for the admin player listings
type PlayersData struct {
	PageData
	Heading string
	Players []*model.PlayerRecord
	// Action is the moderation form to render per row: "ban", "unban" or empty
	Action string
}

// Players renders an admin listing with optional per-row moderation actions
func Players(data PlayersData) templ.Component {
	return page(data.PageData, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>
<nav class="admin">
<a href="/players/waiting">Waiting</a>
<a href="/players/verified">Verified</a>
<a href="/players/banned">Banned</a>
</nav>
<table>
<thead><tr><th>Account</th><th>Name</th><th>Birth year</th><th>National ID</th><th></th></tr></thead>
<tbody>
`, templ.EscapeString(data.Heading)); err != nil {
			return err
		}

		for _, p := range data.Players {
			if _, err := fmt.Fprintf(w, `<tr data-user-id="%s"><td>%s</td><td>%s %s</td><td>%d</td><td>%s</td><td>%s</td></tr>`+"\n",
				templ.EscapeString(string(p.UserID)),
				templ.EscapeString(p.UserName),
				templ.EscapeString(p.FirstName),
				templ.EscapeString(p.LastName),
				p.BirthYear,
				templ.EscapeString(p.GovID),
				actionForm(data.Action, string(p.UserID)),
			); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</tbody>\n</table>\n")
		return err
	})
}

func actionForm(action, userID string) string {
	switch action {
	case "ban", "unban":
		return fmt.Sprintf(`<form method="post" action="/players/%s"><input type="hidden" name="user_id" value="%s"><button type="submit">%s</button></form>`,
			action, templ.EscapeString(userID), action)
	default:
		return ""
	}
}
