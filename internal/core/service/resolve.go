package service

import (
	"context"
	"fmt"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

// ownerSummaries batch-loads the owners of a page of records.
func ownerSummaries(ctx context.Context, users ports.UserRepository, ids []string) (map[string]*domain.UserSummary, error) {
	if len(ids) == 0 {
		return map[string]*domain.UserSummary{}, nil
	}
	found, err := users.FindByIDs(ctx, distinct(ids))
	if err != nil {
		return nil, fmt.Errorf("resolve owners: %w", err)
	}
	out := make(map[string]*domain.UserSummary, len(found))
	for id, u := range found {
		out[id] = u.Summary()
	}
	return out, nil
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
