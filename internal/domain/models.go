package domain

// Candidate is one person offered by the candidate directory
type Candidate struct {
	Value  string // stable identity
	Label  string // display name
	Email  string
	Avatar string // URL of the avatar image
}

// CandidateLabel returns the display label of c
func CandidateLabel(c Candidate) string { return c.Label }

// CandidateValue returns the identity of c
func CandidateValue(c Candidate) string { return c.Value }
