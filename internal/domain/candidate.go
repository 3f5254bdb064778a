package domain

import (
	"encoding/json"
	"fmt"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"

	// GenderAny is only meaningful inside Preferences.
	GenderAny Gender = "Any"
)

// IsValid reports whether g is one of the labels a person can carry.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// IsValidPreference reports whether g can be used as a preference label.
func (g Gender) IsValidPreference() bool {
	return g == GenderAny || g.IsValid()
}

// MaxAge is the oldest age a user may declare.
const MaxAge = 150

// AgeRange is an inclusive [Min, Max] range. It is encoded as a two element
// JSON array to stay compatible with the browser client.
type AgeRange struct {
	Min int
	Max int
}

func (r AgeRange) Contains(age int) bool {
	return age >= r.Min && age <= r.Max
}

func (r AgeRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Min, r.Max})
}

func (r *AgeRange) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("age range must be [min,max]: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("age range must have exactly 2 elements, got %d", len(pair))
	}
	if pair[0] < 0 {
		return fmt.Errorf("age range min %d is negative", pair[0])
	}
	if pair[0] > pair[1] {
		return fmt.Errorf("age range min %d is greater than max %d", pair[0], pair[1])
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// Preferences are match criteria. A nil AgeRange or an empty Gender means
// the criterion was not given.
type Preferences struct {
	AgeRange *AgeRange `json:"ageRange,omitempty"`
	Gender   Gender    `json:"gender,omitempty" binding:"omitempty,pref_gender"`
}

// Candidate is an entry in the user directory.
type Candidate struct {
	ID          int          `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Age         int          `json:"age" db:"age"`
	Gender      Gender       `json:"gender" db:"gender"`
	IsOnline    bool         `json:"isOnline" db:"is_online"`
	Preferences *Preferences `json:"preferences,omitempty" db:"-"`
}

// Clone returns a deep copy so directory entries cannot be mutated through
// returned pointers.
func (c *Candidate) Clone() *Candidate {
	cp := *c
	if c.Preferences != nil {
		prefs := *c.Preferences
		if prefs.AgeRange != nil {
			r := *prefs.AgeRange
			prefs.AgeRange = &r
		}
		cp.Preferences = &prefs
	}
	return &cp
}

// UserContext describes the caller. A zero ID means the caller's identity is
// unknown; zero Age and empty Gender are filled from UserDefaults when needed.
type UserContext struct {
	ID     int    `json:"id"`
	Age    int    `json:"age"`
	Gender Gender `json:"gender"`
}

func (u UserContext) HasID() bool {
	return u.ID != 0
}

// UserDefaults are applied when the caller's age or gender is missing.
type UserDefaults struct {
	Age    int
	Gender Gender
}

// Resolve returns the caller's age and gender with defaults applied.
func (d UserDefaults) Resolve(u UserContext) (int, Gender) {
	age, gender := u.Age, u.Gender
	if age == 0 {
		age = d.Age
	}
	if gender == "" {
		gender = d.Gender
	}
	return age, gender
}
