package services

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/stellabot/stella-gacha/stella/database/models"
	"github.com/stellabot/stella-gacha/stella/database/repositories"
)

type SearchService struct {
	cards repositories.CardRepository
}

func NewSearchService(cards repositories.CardRepository) *SearchService {
	return &SearchService{cards: cards}
}

type cardSource []*models.Card

func (s cardSource) String(i int) string { return strings.ToLower(s[i].Name) }
func (s cardSource) Len() int            { return len(s) }

// Search fuzzy-matches the catalog by name, best matches first. An empty
// query lists the catalog in definition order.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]*models.Card, error) {
	catalog, err := s.cards.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		if limit > 0 && len(catalog) > limit {
			catalog = catalog[:limit]
		}
		return catalog, nil
	}

	matches := fuzzy.FindFrom(query, cardSource(catalog))
	results := make([]*models.Card, 0, len(matches))
	for _, m := range matches {
		results = append(results, catalog[m.Index])
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}
