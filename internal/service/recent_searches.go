package service

import (
	"context"
	"fmt"

	"github.com/weatherapp/backend/internal/domain"
)

// RecentSearchStore keeps the bounded per-user list of searched locations
type RecentSearchStore struct {
	repo UserRepository
}

// NewRecentSearchStore creates a new recent searches store
func NewRecentSearchStore(repo UserRepository) *RecentSearchStore {
	return &RecentSearchStore{repo: repo}
}

// RecordSearch moves term to the front of the user's list and returns the saved list
func (s *RecentSearchStore) RecordSearch(ctx context.Context, userID, term string) ([]string, error) {
	updated, err := s.repo.UpdateRecentSearches(ctx, userID, func(list []string) []string {
		return domain.PushRecentSearch(list, term)
	})
	if err != nil {
		return nil, fmt.Errorf("recent_searches: failed to record search: %w", err)
	}
	return updated, nil
}

// Suggestions returns the user's recent searches, most recent first
func (s *RecentSearchStore) Suggestions(ctx context.Context, userID string) ([]string, error) {
	list, err := s.repo.GetRecentSearches(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("recent_searches: failed to load suggestions: %w", err)
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}
