// Package filter narrows candidate lists by two-way preference checks.
package filter

import "github.com/gdugdh24/videochat-backend/internal/domain"

// Apply returns the candidates that satisfy prefs and whose own preferences
// accept user. The result is a subsequence of candidates in the same order;
// neither the input slice nor its elements are modified. A nil prefs skips
// filtering entirely.
func Apply(candidates []*domain.Candidate, prefs *domain.Preferences, user domain.UserContext, defaults domain.UserDefaults) []*domain.Candidate {
	out := make([]*domain.Candidate, 0, len(candidates))
	if prefs == nil {
		return append(out, candidates...)
	}

	userAge, userGender := defaults.Resolve(user)
	for _, c := range candidates {
		if Matches(c, prefs, userAge, userGender) {
			out = append(out, c)
		}
	}
	return out
}

// Matches reports whether candidate c passes all four rules for a caller of
// the given age and gender.
func Matches(c *domain.Candidate, prefs *domain.Preferences, userAge int, userGender domain.Gender) bool {
	// What the caller asked for.
	if prefs.AgeRange != nil && !prefs.AgeRange.Contains(c.Age) {
		return false
	}
	if wantsGender(prefs.Gender) && c.Gender != prefs.Gender {
		return false
	}

	// What the candidate asked for.
	if c.Preferences == nil {
		return true
	}
	if c.Preferences.AgeRange != nil && !c.Preferences.AgeRange.Contains(userAge) {
		return false
	}
	if wantsGender(c.Preferences.Gender) && userGender != c.Preferences.Gender {
		return false
	}
	return true
}

func wantsGender(g domain.Gender) bool {
	return g != "" && g != domain.GenderAny
}
