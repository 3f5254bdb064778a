package domain

// Settings are the filter settings a user saved for filtered matching.
type Settings struct {
	AgeRange *AgeRange `json:"ageRange" binding:"required"`
	Gender   Gender    `json:"gender" binding:"required,pref_gender"`
}

// DefaultSettings returns the settings a new user starts with.
func DefaultSettings() Settings {
	return Settings{
		AgeRange: &AgeRange{Min: 18, Max: 50},
		Gender:   GenderAny,
	}
}

// Preferences converts saved settings to match preferences.
func (s Settings) Preferences() *Preferences {
	prefs := &Preferences{Gender: s.Gender}
	if s.AgeRange != nil {
		r := *s.AgeRange
		prefs.AgeRange = &r
	}
	return prefs
}

// Clone returns a copy that shares no pointers with s.
func (s Settings) Clone() Settings {
	if s.AgeRange != nil {
		r := *s.AgeRange
		s.AgeRange = &r
	}
	return s
}
