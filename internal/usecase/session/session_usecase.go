// Package session is the facade callers use to drive matchmaking: it holds
// the current user context, loads the user's economy state at session start
// and writes it back from inside every ledger commit.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/repository"
	"github.com/gdugdh24/videochat-backend/internal/usecase/ledger"
	"github.com/gdugdh24/videochat-backend/internal/usecase/match"
	"github.com/google/uuid"
)

const persistTimeout = 5 * time.Second

type SessionUseCase struct {
	economyRepo  repository.EconomyRepository
	settingsRepo repository.SettingsRepository
	selector     *match.Selector
	costs        ledger.Costs
	logger       *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionUseCase(
	economyRepo repository.EconomyRepository,
	settingsRepo repository.SettingsRepository,
	selector *match.Selector,
	costs ledger.Costs,
	logger *slog.Logger,
) *SessionUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionUseCase{
		economyRepo:  economyRepo,
		settingsRepo: settingsRepo,
		selector:     selector,
		costs:        costs,
		logger:       logger,
		sessions:     make(map[string]*Session),
	}
}

// Session is one user's live matchmaking context.
type Session struct {
	ID     string
	User   domain.UserContext
	Ledger *ledger.Ledger

	mu           sync.Mutex
	settings     domain.Settings
	currentMatch *domain.MatchedCandidate
}

// StartRequest carries the current user context. Every field is optional.
type StartRequest struct {
	ID     int           `json:"id" binding:"omitempty,min=0"`
	Age    int           `json:"age" binding:"omitempty,min=0,max=150"`
	Gender domain.Gender `json:"gender" binding:"omitempty,gender"`
}

// StartResponse is returned when a session starts.
type StartResponse struct {
	SessionID string               `json:"session_id"`
	User      domain.UserContext   `json:"user"`
	Status    domain.EconomyStatus `json:"status"`
	Settings  domain.Settings      `json:"settings"`
}

// FindMatchRequest asks for a match. Explicit preferences win; otherwise a
// filtered request uses the saved settings and an unfiltered one matches at
// random.
type FindMatchRequest struct {
	Filtered    bool                `json:"filtered"`
	Preferences *domain.Preferences `json:"preferences"`
}

// Start opens a session for the given user and loads their persisted state.
// Users without an id get a fresh, unpersisted state.
func (uc *SessionUseCase) Start(ctx context.Context, req *StartRequest) (*StartResponse, error) {
	user := domain.UserContext{ID: req.ID, Age: req.Age, Gender: req.Gender}

	state := domain.EconomyState{}
	settings := domain.DefaultSettings()
	if user.HasID() {
		var err error
		state, err = uc.economyRepo.Load(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load economy state: %w", err)
		}
		settings, err = uc.settingsRepo.Load(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
	}

	s := &Session{
		ID:       uuid.NewString(),
		User:     user,
		Ledger:   ledger.New(state, uc.costs),
		settings: settings,
	}
	if user.HasID() {
		s.Ledger.OnCommit(func(state domain.EconomyState) {
			uc.persist(s, state)
		})
	}

	uc.mu.Lock()
	uc.sessions[s.ID] = s
	uc.mu.Unlock()

	uc.logger.Info("session started",
		slog.String("session_id", s.ID),
		slog.Int("user_id", user.ID),
		slog.Int("coins", state.Coins),
		slog.Bool("boost", state.BoostActive),
	)

	return &StartResponse{
		SessionID: s.ID,
		User:      user,
		Status:    s.Ledger.Status(),
		Settings:  settings,
	}, nil
}

// End forgets a session. The economy state was already written back.
func (uc *SessionUseCase) End(ctx context.Context, sessionID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := uc.sessions[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(uc.sessions, sessionID)
	return nil
}

func (uc *SessionUseCase) get(sessionID string) (*Session, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	s, ok := uc.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Status returns the caller's coins, boost flag and filter eligibility.
func (uc *SessionUseCase) Status(ctx context.Context, sessionID string) (domain.EconomyStatus, error) {
	s, err := uc.get(sessionID)
	if err != nil {
		return domain.EconomyStatus{}, err
	}
	return s.Ledger.Status(), nil
}

// AddCoins credits amount coins.
func (uc *SessionUseCase) AddCoins(ctx context.Context, sessionID string, amount int) (domain.EconomyStatus, error) {
	s, err := uc.get(sessionID)
	if err != nil {
		return domain.EconomyStatus{}, err
	}

	state, err := s.Ledger.AddCoins(amount)
	if err != nil {
		return domain.EconomyStatus{}, err
	}
	return ledger.StatusOf(state, uc.costs), nil
}

// BuyPackage credits the coins of catalogue entry index.
func (uc *SessionUseCase) BuyPackage(ctx context.Context, sessionID string, index int) (domain.EconomyStatus, error) {
	if index < 0 || index >= len(domain.CoinPackages) {
		return domain.EconomyStatus{}, domain.ErrInvalidPackage
	}
	return uc.AddCoins(ctx, sessionID, domain.CoinPackages[index].Amount)
}

// PurchaseBoost buys a boost. It fails with domain.ErrInsufficientFunds and
// leaves the state unchanged when the balance is too low.
func (uc *SessionUseCase) PurchaseBoost(ctx context.Context, sessionID string) (domain.EconomyStatus, error) {
	s, err := uc.get(sessionID)
	if err != nil {
		return domain.EconomyStatus{}, err
	}

	state, ok := s.Ledger.PurchaseBoost()
	if !ok {
		return ledger.StatusOf(state, uc.costs), domain.ErrInsufficientFunds
	}
	return ledger.StatusOf(state, uc.costs), nil
}

// FindMatch runs one match attempt for the session. It blocks for the
// selector's delay and returns ctx.Err() without touching coins if the
// caller goes away first.
func (uc *SessionUseCase) FindMatch(ctx context.Context, sessionID string, req *FindMatchRequest) (domain.MatchResult, error) {
	s, err := uc.get(sessionID)
	if err != nil {
		return domain.MatchResult{}, err
	}

	prefs := req.Preferences
	if prefs == nil && req.Filtered {
		s.mu.Lock()
		prefs = s.settings.Preferences()
		s.mu.Unlock()
	}

	result, err := uc.selector.FindMatch(ctx, match.Request{User: s.User, Preferences: prefs}, s.Ledger)
	if err != nil {
		return domain.MatchResult{}, err
	}

	if result.Success {
		s.mu.Lock()
		s.currentMatch = result.Match
		s.mu.Unlock()
	}
	return result, nil
}

// CurrentMatch returns the last successful match of the session.
func (uc *SessionUseCase) CurrentMatch(ctx context.Context, sessionID string) (*domain.MatchedCandidate, error) {
	s, err := uc.get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentMatch == nil {
		return nil, domain.ErrNoCurrentMatch
	}
	return s.currentMatch, nil
}

// EndCall clears the current match.
func (uc *SessionUseCase) EndCall(ctx context.Context, sessionID string) error {
	s, err := uc.get(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.currentMatch = nil
	s.mu.Unlock()
	return nil
}

func (uc *SessionUseCase) GetSettings(ctx context.Context, sessionID string) (domain.Settings, error) {
	s, err := uc.get(sessionID)
	if err != nil {
		return domain.Settings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone(), nil
}

func (uc *SessionUseCase) UpdateSettings(ctx context.Context, sessionID string, settings domain.Settings) (domain.Settings, error) {
	s, err := uc.get(sessionID)
	if err != nil {
		return domain.Settings{}, err
	}

	if s.User.HasID() {
		if err := uc.settingsRepo.Save(ctx, s.User.ID, settings); err != nil {
			return domain.Settings{}, fmt.Errorf("failed to save settings: %w", err)
		}
	}

	s.mu.Lock()
	s.settings = settings.Clone()
	s.mu.Unlock()
	return settings, nil
}

// persist writes a committed state back to the store. It runs under the
// ledger lock, so writes reach the store in commit order. The in-memory
// ledger stays authoritative for the session and a failed write is only
// logged.
func (uc *SessionUseCase) persist(s *Session, state domain.EconomyState) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := uc.economyRepo.Save(ctx, s.User.ID, state); err != nil {
		uc.logger.Warn("failed to persist economy state",
			slog.String("session_id", s.ID),
			slog.Int("user_id", s.User.ID),
			slog.Any("error", err),
		)
	}
}
