package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkdr/teamgate/internal/model"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")

	value := codec.Encode("sess-123")
	id, err := codec.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, model.SessionID("sess-123"), id)
}

func TestCodecRejectsTamperedID(t *testing.T) {
	codec := NewCodec("test-secret")

	value := codec.Encode("sess-123")
	tampered := "sess-456" + value[len("sess-123"):]

	_, err := codec.Decode(tampered)
	assert.ErrorIs(t, err, model.ErrBadSessionCookie)
}

func TestCodecRejectsWrongSecret(t *testing.T) {
	value := NewCodec("secret-a").Encode("sess-123")

	_, err := NewCodec("secret-b").Decode(value)
	assert.ErrorIs(t, err, model.ErrBadSessionCookie)
}

func TestCodecRejectsMalformedValues(t *testing.T) {
	codec := NewCodec("test-secret")

	for _, value := range []string{"", "no-dot", ".sig-only", "sess-123."} {
		_, err := codec.Decode(value)
		assert.ErrorIs(t, err, model.ErrBadSessionCookie, "value %q", value)
	}
}
