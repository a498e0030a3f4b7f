package domain

import (
	"strings"
	"time"
)

type Source string

const (
	SourceCurseForge Source = "curseforge"
	SourceModrinth   Source = "modrinth"
	SourceOther      Source = "other"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// DefaultRejectionReason is stored when an admin rejects without a reason.
const DefaultRejectionReason = "No reason provided"

type Suggestion struct {
	ID              string
	ModName         string
	ModURL          string
	Source          Source // fixed at creation, never recomputed
	Description     string
	Status          Status
	RejectionReason string // empty unless rejected
	SubmittedAt     time.Time
	AuthorID        string
}

// SuggestionView is a Suggestion joined with its author's username, as shown
// in listings.
type SuggestionView struct {
	Suggestion
	AuthorUsername string
}

// DetectSource infers where a mod is hosted from its URL. Matching is a
// case-insensitive substring check; CurseForge wins if both hosts appear.
func DetectSource(modURL string) Source {
	lower := strings.ToLower(modURL)
	switch {
	case strings.Contains(lower, "curseforge.com"):
		return SourceCurseForge
	case strings.Contains(lower, "modrinth.com"):
		return SourceModrinth
	default:
		return SourceOther
	}
}
