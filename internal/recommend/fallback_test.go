package recommend

import (
	"testing"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

func TestFallbackPickDistinct(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		picked := NewFallback(NewRand(seed)).Pick()
		if len(picked) != 3 {
			t.Fatalf("seed %d: expected 3 entries, got %d", seed, len(picked))
		}

		seen := make(map[string]bool)
		for _, rec := range picked {
			if seen[rec.Title] {
				t.Errorf("seed %d: duplicate title %q", seed, rec.Title)
			}
			seen[rec.Title] = true
			if !inCuratedList(rec) {
				t.Errorf("seed %d: %q is not curated", seed, rec.Title)
			}
		}
	}
}

func TestFallbackSeededIsDeterministic(t *testing.T) {
	a := NewFallback(NewRand(42)).Pick()
	b := NewFallback(NewRand(42)).Pick()

	for i := range a {
		if a[i].Title != b[i].Title {
			t.Fatalf("same seed picked %q and %q at %d", a[i].Title, b[i].Title, i)
		}
	}
}

func TestFallbackDoesNotMutatePool(t *testing.T) {
	before := curatedFallbacks[0].Title
	f := NewFallback(NewRand(5))
	for range 10 {
		f.Pick()
	}
	if curatedFallbacks[0].Title != before {
		t.Error("Pick must not reorder the curated list")
	}
}

func TestFallbackPoolTooSmallPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a pool smaller than 3")
		}
	}()
	newFallback(NewRand(1), curatedFallbacks[:2])
}

func inCuratedList(rec domain.Recommendation) bool {
	for _, c := range curatedFallbacks {
		if c == rec {
			return true
		}
	}
	return false
}
