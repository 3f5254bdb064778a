// Package ledger tracks a user's coin balance and boost status and gates
// filtered matching on them.
//
// The transitions are pure functions over domain.EconomyState. Ledger wraps
// one state behind a mutex so each read-modify-write is atomic. Loading the
// state is left to the caller; saving hooks in through OnCommit.
package ledger

import (
	"sync"

	"github.com/gdugdh24/videochat-backend/internal/domain"
)

const (
	DefaultFilterCost = 10
	DefaultBoostCost  = 50
)

// Costs are the prices charged by the ledger.
type Costs struct {
	Filter int
	Boost  int
}

func DefaultCosts() Costs {
	return Costs{Filter: DefaultFilterCost, Boost: DefaultBoostCost}
}

// FilterEligible reports whether s may use preference filtering.
func FilterEligible(s domain.EconomyState, c Costs) bool {
	return s.Coins >= c.Filter || s.BoostActive
}

func StatusOf(s domain.EconomyState, c Costs) domain.EconomyStatus {
	return domain.EconomyStatus{
		Coins:          s.Coins,
		BoostActive:    s.BoostActive,
		FilterEligible: FilterEligible(s, c),
	}
}

// AddCoins credits amount to s. There is no upper bound.
func AddCoins(s domain.EconomyState, amount int) (domain.EconomyState, error) {
	if amount < 0 {
		return s, domain.ErrInvalidAmount
	}
	s.Coins += amount
	return s, nil
}

// PurchaseBoost deducts cost and activates the boost when s can afford it.
// An already active boost is bought again at full price.
func PurchaseBoost(s domain.EconomyState, cost int) (domain.EconomyState, bool) {
	if s.Coins < cost {
		return s, false
	}
	s.Coins -= cost
	s.BoostActive = true
	return s, true
}

// ChargeFilterUse deducts cost for one filtered match attempt. Boosted users
// filter for free, and a balance below cost is left untouched.
func ChargeFilterUse(s domain.EconomyState, cost int) (domain.EconomyState, bool) {
	if s.BoostActive || s.Coins < cost {
		return s, false
	}
	s.Coins -= cost
	return s, true
}

// Ledger is one user's economy state with atomic mutations.
type Ledger struct {
	mu     sync.Mutex
	state  domain.EconomyState
	costs  Costs
	commit func(domain.EconomyState)
}

// New returns a ledger seeded with a previously persisted state. A negative
// balance is clamped to zero.
func New(state domain.EconomyState, costs Costs) *Ledger {
	if state.Coins < 0 {
		state.Coins = 0
	}
	return &Ledger{state: state, costs: costs}
}

// OnCommit registers fn to receive every state that changes the balance or
// boost flag. fn runs under the ledger lock, so successive calls see states
// in commit order and fn must not call back into the ledger.
func (l *Ledger) OnCommit(fn func(domain.EconomyState)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.commit = fn
}

func (l *Ledger) Costs() Costs {
	return l.costs
}

// State returns a snapshot suitable for persisting.
func (l *Ledger) State() domain.EconomyState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Ledger) Status() domain.EconomyStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return StatusOf(l.state, l.costs)
}

func (l *Ledger) AddCoins(amount int) (domain.EconomyState, error) {
	return l.Update(func(s domain.EconomyState) (domain.EconomyState, error) {
		return AddCoins(s, amount)
	})
}

func (l *Ledger) PurchaseBoost() (domain.EconomyState, bool) {
	var ok bool
	state, _ := l.Update(func(s domain.EconomyState) (domain.EconomyState, error) {
		var next domain.EconomyState
		next, ok = PurchaseBoost(s, l.costs.Boost)
		return next, nil
	})
	return state, ok
}

func (l *Ledger) ChargeFilterUse() (domain.EconomyState, bool) {
	var charged bool
	state, _ := l.Update(func(s domain.EconomyState) (domain.EconomyState, error) {
		var next domain.EconomyState
		next, charged = ChargeFilterUse(s, l.costs.Filter)
		return next, nil
	})
	return state, charged
}

// Update applies fn to the current state and commits its result as one
// step. Nothing is committed when fn fails or would make the balance
// negative.
func (l *Ledger) Update(fn func(domain.EconomyState) (domain.EconomyState, error)) (domain.EconomyState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := fn(l.state)
	if err != nil {
		return l.state, err
	}
	if next.Coins < 0 {
		return l.state, domain.ErrInsufficientFunds
	}
	changed := next != l.state
	l.state = next
	if changed && l.commit != nil {
		l.commit(next)
	}
	return l.state, nil
}
