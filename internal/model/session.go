package model

import "time"

// SessionID identifies a browser session
type SessionID string

// Session holds per-browser-session state. The zero UserID means the
// visitor has not completed the OAuth flow yet.
type Session struct {
	ID         SessionID `json:"id"`
	UserID     UserID    `json:"userId,omitempty"`
	UserName   string    `json:"userName,omitempty"`
	AuthToken  string    `json:"authToken,omitempty"`
	OAuthState string    `json:"oauthState,omitempty"`
	ReturnURL  string    `json:"returnUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Authenticated reports whether the session belongs to a logged-in account
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

// VisitorState is the explicit per-session state machine, computed from the
// session plus a record-store lookup at the top of each handler.
type VisitorState int

const (
	// StateAnonymous means no completed OAuth login
	StateAnonymous VisitorState = iota
	// StateAuthenticated means logged in but not yet verified
	StateAuthenticated
	// StateVerified means a non-banned verification record exists
	StateVerified
	// StateBanned means the account has a banned record
	StateBanned
)

// String returns a human-readable state name
func (s VisitorState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	case StateVerified:
		return "verified"
	case StateBanned:
		return "banned"
	default:
		return "unknown"
	}
}
