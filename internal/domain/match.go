package domain

// MatchedCandidate is the partner picked by a match attempt.
type MatchedCandidate struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Age         int          `json:"age"`
	Gender      Gender       `json:"gender"`
	Preferences *Preferences `json:"preferences,omitempty"`
	Room        string       `json:"room,omitempty"`
}

// MatchResult is the outcome of a match attempt. Failures are carried as
// values: Success is false, Message is human readable and Reason holds the
// sentinel error.
type MatchResult struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Match   *MatchedCandidate `json:"match,omitempty"`
	Reason  error             `json:"-"`
}

// FailedMatch builds a failed result from a sentinel error.
func FailedMatch(reason error) MatchResult {
	return MatchResult{
		Success: false,
		Message: reason.Error(),
		Reason:  reason,
	}
}

// NewMatch builds a successful result for candidate c.
func NewMatch(c *Candidate, room string) MatchResult {
	return MatchResult{
		Success: true,
		Match: &MatchedCandidate{
			ID:          c.ID,
			Name:        c.Name,
			Age:         c.Age,
			Gender:      c.Gender,
			Preferences: c.Clone().Preferences,
			Room:        room,
		},
	}
}
