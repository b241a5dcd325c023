package domain

import "time"

// MaxRecentSearches bounds the per-user recent searches list
const MaxRecentSearches = 5

// User represents a registered account
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	RecentSearches []string  `json:"recentSearches"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PushRecentSearch returns a new list with term at the front, any earlier
// exact occurrence removed, and at most MaxRecentSearches entries.
// The input slice is not modified.
func PushRecentSearch(list []string, term string) []string {
	out := make([]string, 0, MaxRecentSearches)
	out = append(out, term)
	for _, s := range list {
		if len(out) == MaxRecentSearches {
			break
		}
		if s == term {
			continue
		}
		out = append(out, s)
	}
	return out
}
