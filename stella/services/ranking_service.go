package services

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/stellabot/stella-gacha/stella/database/models"
	"github.com/stellabot/stella-gacha/stella/database/repositories"
)

type RankingEntry struct {
	UserID   string `json:"user_id"`
	Distinct int    `json:"distinct_cards"`
	Total    int    `json:"total_cards"`
	Balance  int64  `json:"balance"`
}

type RankingService struct {
	users     repositories.UserRepository
	userCards repositories.UserCardRepository
}

func NewRankingService(users repositories.UserRepository, userCards repositories.UserCardRepository) *RankingService {
	return &RankingService{users: users, userCards: userCards}
}

// Ranking orders every registered user by distinct cards owned, then total
// instances, then user ID for a stable tail. User and count queries run
// concurrently.
func (s *RankingService) Ranking(ctx context.Context, limit int) ([]RankingEntry, error) {
	var (
		users  []*models.User
		counts []repositories.UserCardCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.GetUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.userCards.CountsByUser(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byUser := make(map[string]repositories.UserCardCount, len(counts))
	for _, c := range counts {
		byUser[c.UserID] = c
	}

	entries := make([]RankingEntry, 0, len(users))
	for _, u := range users {
		c := byUser[u.DiscordID]
		entries = append(entries, RankingEntry{
			UserID:   u.DiscordID,
			Distinct: c.Distinct,
			Total:    c.Total,
			Balance:  u.Balance,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Distinct != entries[j].Distinct {
			return entries[i].Distinct > entries[j].Distinct
		}
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].UserID < entries[j].UserID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
