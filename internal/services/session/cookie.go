package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/tkdr/teamgate/internal/model"
)

// CookieName is the browser cookie carrying the signed session id
const CookieName = "teamgate_session"

// Codec signs and verifies session-id cookie values. The cookie value is
// "<id>.<hex hmac-sha256(id)>"; the session payload itself stays in Redis.
type Codec struct {
	secret []byte
}

// NewCodec creates a codec from the configured session secret
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode returns the signed cookie value for a session id
func (c *Codec) Encode(id model.SessionID) string {
	return string(id) + "." + c.sign(string(id))
}

// Decode verifies a cookie value and returns the session id,
// or model.ErrBadSessionCookie
func (c *Codec) Decode(value string) (model.SessionID, error) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", model.ErrBadSessionCookie
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(id))) {
		return "", model.ErrBadSessionCookie
	}
	return model.SessionID(id), nil
}

func (c *Codec) sign(id string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}
