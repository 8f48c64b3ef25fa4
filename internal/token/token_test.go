package token

import (
	"strings"
	"testing"
	"time"

	"github.com/Raulcudris/microservices-fargate-demo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *model.User {
	return &model.User{ID: 42, Username: "alice", Role: model.RoleUser}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")

	raw, issued, err := codec.Issue(testUser(), time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	require.NotEmpty(t, issued.ID)

	claims, err := codec.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestCodec_TamperedSignature(t *testing.T) {
	codec := NewCodec("test-secret")

	raw, _, err := codec.Issue(testUser(), time.Hour)
	require.NoError(t, err)

	// flip the first byte of the signature segment
	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Parse(tampered)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestCodec_SecretMismatch(t *testing.T) {
	raw, _, err := NewCodec("secret-one").Issue(testUser(), time.Hour)
	require.NoError(t, err)

	_, err = NewCodec("secret-two").Parse(raw)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestCodec_Expired(t *testing.T) {
	codec := NewCodec("test-secret")

	// signature is valid, the token is simply past its expiry
	raw, _, err := codec.Issue(testUser(), -time.Minute)
	require.NoError(t, err)

	_, err = codec.Parse(raw)
	assert.ErrorIs(t, err, model.ErrExpired)
}

func TestCodec_LeewayToleratesSkew(t *testing.T) {
	raw, _, err := NewCodec("test-secret").Issue(testUser(), -time.Minute)
	require.NoError(t, err)

	// a codec tolerating 5m of skew still accepts it
	claims, err := NewCodec("test-secret", WithLeeway(5*time.Minute)).Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
}

func TestCodec_Malformed(t *testing.T) {
	codec := NewCodec("test-secret")

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := codec.Parse(raw)
		assert.ErrorIs(t, err, model.ErrMalformed, "input %q", raw)
	}
}
