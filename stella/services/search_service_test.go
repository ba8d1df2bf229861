package services

import (
	"context"
	"testing"
)

func TestSearchService_Search(t *testing.T) {
	svc := NewSearchService(newFakeCardRepo(testCatalog()...))
	ctx := context.Background()

	results, err := svc.Search(ctx, "knight", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 || results[0].Name != "Silver Knight" {
		t.Fatalf("Search(knight) best match = %v, want Silver Knight", results)
	}

	// Fuzzy matching tolerates gaps in the query.
	results, err = svc.Search(ctx, "slvr kght", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 || results[0].Name != "Silver Knight" {
		t.Fatalf("fuzzy match failed, got %v", results)
	}

	results, err = svc.Search(ctx, "zzzqqq", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no matches, got %d", len(results))
	}
}

func TestSearchService_Search_EmptyQueryListsCatalog(t *testing.T) {
	svc := NewSearchService(newFakeCardRepo(testCatalog()...))

	results, err := svc.Search(context.Background(), "  ", 4)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d cards, want 4", len(results))
	}
	if results[0].Name != "Scrap Golem" {
		t.Errorf("catalog order not preserved, first = %q", results[0].Name)
	}
}
