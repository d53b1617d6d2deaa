package models

// RoommateProfile is a potential roommate shown on the roommate screen
type RoommateProfile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Budget    Budget   `json:"budget"`
	Schedule  string   `json:"schedule"`
	Pets      bool     `json:"pets"`
	Location  string   `json:"location"`
	Interests []string `json:"interests"`
	Bio       string   `json:"bio"`
}

// CompatibilityScore is a 0-100 match rating with a short explanation
type CompatibilityScore struct {
	Score   int    `json:"score"`
	Summary string `json:"summary"`
}

// Valid reports whether the score is within 0-100 and has a summary
func (c CompatibilityScore) Valid() bool {
	return c.Score >= 0 && c.Score <= 100 && c.Summary != ""
}
