// Package agora mints Agora RTC access tokens (AccessToken version 006)
// with the Agora community token builder.
package agora

import (
	"errors"
	"fmt"
	"time"

	rtctokenbuilder "github.com/AgoraIO-Community/go-tokenbuilder/rtctokenbuilder"
)

// Role selects the privileges granted by a token.
type Role int

const (
	RolePublisher  Role = 1
	RoleSubscriber Role = 2
)

// ParseRole maps the query value used by clients. Anything but
// "subscriber" is a publisher.
func ParseRole(s string) Role {
	if s == "subscriber" {
		return RoleSubscriber
	}
	return RolePublisher
}

func (r Role) rtc() rtctokenbuilder.Role {
	if r == RoleSubscriber {
		return rtctokenbuilder.RoleSubscriber
	}
	return rtctokenbuilder.RolePublisher
}

var ErrMissingCredentials = errors.New("agora app id and certificate are required")

// TokenBuilder signs RTC tokens. Now is the clock expiry times are computed
// from and is swappable for tests.
type TokenBuilder struct {
	Now func() time.Time
}

func NewTokenBuilder() *TokenBuilder {
	return &TokenBuilder{Now: time.Now}
}

// BuildWithUID returns a token for uid in channel, valid until
// privilegeExpireTs (unix seconds). A zero uid grants access to any uid.
func (b *TokenBuilder) BuildWithUID(appID, appCertificate, channel string, uid uint32, role Role, privilegeExpireTs uint32) (string, error) {
	if appID == "" || appCertificate == "" {
		return "", ErrMissingCredentials
	}

	token, err := rtctokenbuilder.BuildTokenWithUID(appID, appCertificate, channel, uid, role.rtc(), privilegeExpireTs)
	if err != nil {
		return "", fmt.Errorf("failed to sign rtc token: %w", err)
	}
	return token, nil
}
