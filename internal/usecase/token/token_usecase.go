package token

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/infrastructure/agora"
)

const (
	DefaultExpireSeconds = 3600
	MinExpireSeconds     = 60
)

// Credentials are the two server-side secrets a token is signed with.
type Credentials struct {
	AppID          string
	AppCertificate string
}

func (c Credentials) Complete() bool {
	return c.AppID != "" && c.AppCertificate != ""
}

type TokenUseCase struct {
	credentials   Credentials
	legacy        Credentials
	defaultExpire int
	builder       *agora.TokenBuilder
	logger        *slog.Logger
}

func NewTokenUseCase(
	credentials Credentials,
	legacy Credentials,
	defaultExpire int,
	builder *agora.TokenBuilder,
	logger *slog.Logger,
) *TokenUseCase {
	if defaultExpire <= 0 {
		defaultExpire = DefaultExpireSeconds
	}
	if builder == nil {
		builder = agora.NewTokenBuilder()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenUseCase{
		credentials:   credentials,
		legacy:        legacy,
		defaultExpire: defaultExpire,
		builder:       builder,
		logger:        logger,
	}
}

// MintRequest mirrors the query string of GET /api/agora-token.
type MintRequest struct {
	Channel       string `form:"channel"`
	UID           string `form:"uid"`
	Role          string `form:"role"`
	ExpireSeconds string `form:"expireSeconds"`
}

// MintResponse is returned to the media client. UID echoes the requested uid
// string, or 0 when none was given.
type MintResponse struct {
	AppID     string      `json:"appId"`
	Channel   string      `json:"channel"`
	UID       interface{} `json:"uid"`
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expiresAt"`
}

// Mint signs a token for the requested channel.
func (uc *TokenUseCase) Mint(ctx context.Context, req *MintRequest) (*MintResponse, error) {
	if !uc.credentials.Complete() {
		return nil, domain.ErrMisconfigured
	}
	if req.Channel == "" {
		return nil, domain.ErrMissingChannel
	}

	expireSeconds := uc.parseExpire(req.ExpireSeconds)
	expiresAt := uc.builder.Now().Unix() + int64(expireSeconds)

	var uid interface{} = 0
	if req.UID != "" {
		uid = req.UID
	}

	token, err := uc.builder.BuildWithUID(
		uc.credentials.AppID,
		uc.credentials.AppCertificate,
		req.Channel,
		parseUID(req.UID),
		agora.ParseRole(req.Role),
		uint32(expiresAt),
	)
	if err != nil {
		uc.logger.Error("failed to generate agora token", slog.String("channel", req.Channel), slog.Any("error", err))
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &MintResponse{
		AppID:     uc.credentials.AppID,
		Channel:   req.Channel,
		UID:       uid,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// MintLegacy signs a publisher token for uid 0 valid for the default
// lifetime, as the older POST /token endpoint did.
func (uc *TokenUseCase) MintLegacy(ctx context.Context, channelName string) (string, error) {
	if channelName == "" {
		return "", domain.ErrMissingChannel
	}

	creds := uc.legacy
	if !creds.Complete() {
		creds = uc.credentials
	}
	if !creds.Complete() {
		return "", domain.ErrMisconfigured
	}

	expiresAt := uc.builder.Now().Add(time.Duration(DefaultExpireSeconds) * time.Second).Unix()
	token, err := uc.builder.BuildWithUID(creds.AppID, creds.AppCertificate, channelName, 0, agora.RolePublisher, uint32(expiresAt))
	if err != nil {
		uc.logger.Error("failed to generate legacy token", slog.String("channel", channelName), slog.Any("error", err))
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// parseExpire reads the leading integer of raw, so "120s" means 120. Missing,
// zero or digit-less values fall back to the default, and the result never
// goes below MinExpireSeconds.
func (uc *TokenUseCase) parseExpire(raw string) int {
	expire, ok := leadingInt(raw)
	if !ok || expire == 0 {
		expire = uc.defaultExpire
	}
	if expire < MinExpireSeconds {
		expire = MinExpireSeconds
	}
	return expire
}

// leadingInt parses optional leading whitespace, an optional sign and the
// run of decimal digits that follows. Anything after the digits is ignored.
func leadingInt(raw string) (int, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseUID returns the numeric uid, or 0 for anything that is not a uint32.
func parseUID(raw string) uint32 {
	uid, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(uid)
}
