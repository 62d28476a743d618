package seeds

import "testing"

func TestCatalogue(t *testing.T) {
	if len(catalogue) != 40 {
		t.Errorf("expected 40 curated movies, got %d", len(catalogue))
	}

	titles := make(map[string]bool)
	imdbIDs := make(map[string]bool)
	for _, m := range catalogue {
		if titles[m.title] || imdbIDs[m.imdbID] {
			t.Errorf("duplicate movie %q (%s)", m.title, m.imdbID)
		}
		titles[m.title], imdbIDs[m.imdbID] = true, true

		if m.imdb < 0 || m.imdb > 10 || m.rt < 0 || m.rt > 100 {
			t.Errorf("%q: ratings out of range", m.title)
		}
		if m.year < 1900 || m.genre == "" {
			t.Errorf("%q: missing year or genre", m.title)
		}
	}
}

func TestHalfStep(t *testing.T) {
	cases := map[float64]float64{
		7.24: 7.0,
		7.26: 7.5,
		9.9:  10,
		10.4: 10,
		-0.3: 0,
		3.75: 4,
	}
	for in, want := range cases {
		if got := halfStep(in); got != want {
			t.Errorf("halfStep(%v) = %v, want %v", in, got, want)
		}
	}
}
