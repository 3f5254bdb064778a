package match

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/usecase/filter"
	"github.com/gdugdh24/videochat-backend/internal/usecase/ledger"
)

const (
	PolicySharedRoom = "shared_room"
	PolicyRandom     = "random"

	DefaultGlobalRoom = "call_room_global"
)

// Request is one match attempt by the current user. A nil Preferences asks
// for an unfiltered match.
type Request struct {
	User        domain.UserContext
	Preferences *domain.Preferences
}

// Policy picks a partner from the online pool. Select is a pure state
// transition: it returns the result together with the economy state after
// any filter charge, and the caller commits both at once.
type Policy interface {
	Name() string
	Select(online []*domain.Candidate, req Request, state domain.EconomyState) (domain.MatchResult, domain.EconomyState)
}

// NewPolicy builds the policy registered under name.
func NewPolicy(name, room string, costs ledger.Costs, defaults domain.UserDefaults) (Policy, error) {
	switch name {
	case PolicySharedRoom, "":
		return NewSharedRoomPolicy(room, costs, defaults), nil
	case PolicyRandom:
		return NewRandomPolicy(costs, defaults, nil), nil
	default:
		return nil, fmt.Errorf("unknown match policy %q", name)
	}
}

// SharedRoomPolicy always picks the online candidate with the smallest id
// and sends every pair to the same global room, so any two live users meet
// without a signalling backend. When exactly two users are online they are
// paired regardless of filters; an empty filtered set falls back to the
// unfiltered pool.
type SharedRoomPolicy struct {
	room     string
	costs    ledger.Costs
	defaults domain.UserDefaults
}

func NewSharedRoomPolicy(room string, costs ledger.Costs, defaults domain.UserDefaults) *SharedRoomPolicy {
	if room == "" {
		room = DefaultGlobalRoom
	}
	return &SharedRoomPolicy{room: room, costs: costs, defaults: defaults}
}

func (p *SharedRoomPolicy) Name() string { return PolicySharedRoom }

func (p *SharedRoomPolicy) Room() string { return p.room }

func (p *SharedRoomPolicy) Select(online []*domain.Candidate, req Request, state domain.EconomyState) (domain.MatchResult, domain.EconomyState) {
	if len(online) < 2 {
		return domain.FailedMatch(domain.ErrNoUsersOnline), state
	}

	candidates := excludeSelf(online, req.User)
	pool := candidates

	paired := len(online) == 2 && req.User.HasID()
	if !paired && req.Preferences != nil && ledger.FilterEligible(state, p.costs) {
		pool = filter.Apply(candidates, req.Preferences, req.User, p.defaults)
		state, _ = ledger.ChargeFilterUse(state, p.costs.Filter)
	}
	if len(pool) == 0 {
		pool = candidates
	}
	if len(pool) == 0 {
		return domain.FailedMatch(domain.ErrNoUsersOnline), state
	}

	best := pool[0]
	for _, c := range pool[1:] {
		if c.ID < best.ID {
			best = c
		}
	}
	return domain.NewMatch(best, p.room), state
}

// RandomPolicy picks uniformly among the remaining candidates and produces
// no room; the caller chooses where the pair meets. An empty filtered set
// is a failure, there is no fallback.
type RandomPolicy struct {
	costs    ledger.Costs
	defaults domain.UserDefaults

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPolicy returns a RandomPolicy drawing from rng, or from the
// package-level generator when rng is nil.
func NewRandomPolicy(costs ledger.Costs, defaults domain.UserDefaults, rng *rand.Rand) *RandomPolicy {
	return &RandomPolicy{costs: costs, defaults: defaults, rng: rng}
}

func (p *RandomPolicy) Name() string { return PolicyRandom }

func (p *RandomPolicy) Select(online []*domain.Candidate, req Request, state domain.EconomyState) (domain.MatchResult, domain.EconomyState) {
	if len(online) < 2 {
		return domain.FailedMatch(domain.ErrNoUsersOnline), state
	}

	pool := excludeSelf(online, req.User)
	if req.Preferences != nil && ledger.FilterEligible(state, p.costs) {
		pool = filter.Apply(pool, req.Preferences, req.User, p.defaults)
		state, _ = ledger.ChargeFilterUse(state, p.costs.Filter)
	}
	if len(pool) == 0 {
		return domain.FailedMatch(domain.ErrNoFilteredMatches), state
	}

	return domain.NewMatch(pool[p.intn(len(pool))], ""), state
}

func (p *RandomPolicy) intn(n int) int {
	if p.rng == nil {
		return rand.IntN(n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

func excludeSelf(online []*domain.Candidate, user domain.UserContext) []*domain.Candidate {
	if !user.HasID() {
		return online
	}
	out := make([]*domain.Candidate, 0, len(online))
	for _, c := range online {
		if c.ID != user.ID {
			out = append(out, c)
		}
	}
	return out
}
