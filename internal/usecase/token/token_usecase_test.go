package token

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/infrastructure/agora"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testCreds   = Credentials{AppID: "970CA35de60c44645bbae8a215061b33", AppCertificate: "5CFd2fd1755d40ecb72977518be15d3b"}
	legacyCreds = Credentials{AppID: "0123456789abcdef0123456789abcdef", AppCertificate: "fedcba9876543210fedcba9876543210"}
	fixedNow    = time.Unix(1700000000, 0)
)

func newTestUseCase(creds, legacy Credentials) *TokenUseCase {
	builder := &agora.TokenBuilder{Now: func() time.Time { return fixedNow }}
	return NewTokenUseCase(creds, legacy, 0, builder, nil)
}

func TestMint(t *testing.T) {
	uc := newTestUseCase(testCreds, Credentials{})

	resp, err := uc.Mint(context.Background(), &MintRequest{Channel: "call_room_global", UID: "42"})
	require.NoError(t, err)
	assert.Equal(t, testCreds.AppID, resp.AppID)
	assert.Equal(t, "call_room_global", resp.Channel)
	assert.Equal(t, "42", resp.UID)
	assert.Equal(t, fixedNow.Unix()+DefaultExpireSeconds, resp.ExpiresAt)
	assert.True(t, strings.HasPrefix(resp.Token, "006"+testCreds.AppID))
}

func TestMintMissingUIDEchoesZero(t *testing.T) {
	uc := newTestUseCase(testCreds, Credentials{})

	resp, err := uc.Mint(context.Background(), &MintRequest{Channel: "room"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.UID)
}

func TestMintExpiry(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int64
	}{
		{"missing", "", 3600},
		{"zero", "0", 3600},
		{"malformed", "soon", 3600},
		{"trailing text", "120abc", 120},
		{"leading space", " 90", 90},
		{"explicit plus", "+300", 300},
		{"decimal", "90.5", 90},
		{"sign only", "-", 3600},
		{"negative zero", "-0", 3600},
		{"below minimum", "10", 60},
		{"negative", "-5", 60},
		{"explicit", "7200", 7200},
	}

	uc := newTestUseCase(testCreds, Credentials{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Mint(context.Background(), &MintRequest{Channel: "room", ExpireSeconds: tt.raw})
			require.NoError(t, err)
			assert.Equal(t, fixedNow.Unix()+tt.expected, resp.ExpiresAt)
		})
	}
}

func TestMintChecksCredentialsBeforeChannel(t *testing.T) {
	uc := newTestUseCase(Credentials{AppID: "only-id"}, legacyCreds)

	_, err := uc.Mint(context.Background(), &MintRequest{})
	assert.ErrorIs(t, err, domain.ErrMisconfigured)

	uc = newTestUseCase(testCreds, Credentials{})
	_, err = uc.Mint(context.Background(), &MintRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingChannel)
}

func TestMintLegacy(t *testing.T) {
	t.Run("prefers legacy credentials", func(t *testing.T) {
		tok, err := newTestUseCase(testCreds, legacyCreds).MintLegacy(context.Background(), "room")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(tok, "006"+legacyCreds.AppID))
	})

	t.Run("falls back to agora credentials", func(t *testing.T) {
		tok, err := newTestUseCase(testCreds, Credentials{}).MintLegacy(context.Background(), "room")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(tok, "006"+testCreds.AppID))
	})

	t.Run("missing channel", func(t *testing.T) {
		_, err := newTestUseCase(Credentials{}, Credentials{}).MintLegacy(context.Background(), "")
		assert.ErrorIs(t, err, domain.ErrMissingChannel)
	})

	t.Run("misconfigured", func(t *testing.T) {
		_, err := newTestUseCase(Credentials{}, Credentials{}).MintLegacy(context.Background(), "room")
		assert.ErrorIs(t, err, domain.ErrMisconfigured)
	})
}

func TestParseUID(t *testing.T) {
	assert.Equal(t, uint32(0), parseUID(""))
	assert.Equal(t, uint32(0), parseUID("abc"))
	assert.Equal(t, uint32(0), parseUID("4294967296"))
	assert.Equal(t, uint32(4294967295), parseUID("4294967295"))
}

func TestLeadingInt(t *testing.T) {
	n, ok := leadingInt("\t42 seconds")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	n, ok = leadingInt("-15x")
	assert.True(t, ok)
	assert.Equal(t, -15, n)

	_, ok = leadingInt("x42")
	assert.False(t, ok)
	_, ok = leadingInt("")
	assert.False(t, ok)
	_, ok = leadingInt("99999999999999999999")
	assert.False(t, ok)
}
