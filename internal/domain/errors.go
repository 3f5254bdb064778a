package domain

import "errors"

var (
	// Matchmaking
	ErrNoUsersOnline     = errors.New("no users online at the moment")
	ErrNoFilteredMatches = errors.New("no matches found, adjust filters or use random matching")

	// Economy
	ErrInsufficientFunds = errors.New("not enough coins")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrInvalidPackage    = errors.New("unknown coin package")

	// Session
	ErrSessionNotFound = errors.New("session not found")
	ErrNoCurrentMatch  = errors.New("no current match")

	// Token minting
	ErrMisconfigured  = errors.New("server misconfigured: missing AGORA_APP_ID or AGORA_APP_CERTIFICATE")
	ErrMissingChannel = errors.New("missing channel")
)
