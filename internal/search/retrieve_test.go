package search

import (
	"testing"

	"github.com/andraskurtos/movie-recommender/internal/catalog"
)

func entries(titles ...string) []catalog.Movie {
	movies := make([]catalog.Movie, len(titles))
	for i, title := range titles {
		movies[i] = catalog.Movie{ID: int64(i + 1), Title: title}
	}
	return movies
}

func titles(movies []catalog.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	catalog := entries("The Matrix", "Inception")

	for _, query := range []string{"", "   ", "\t"} {
		if got := Retrieve(catalog, query, DefaultConfig()); len(got) != 0 {
			t.Errorf("Retrieve(%q) returned %d entries, want 0", query, len(got))
		}
	}
}

func TestRetrieve_NoMatchReturnsEmpty(t *testing.T) {
	catalog := entries("The Matrix", "Inception", "Casablanca")

	got := Retrieve(catalog, "zzzzqqqq", DefaultConfig())
	if len(got) != 0 {
		t.Errorf("Retrieve with no plausible match returned %v, want empty (no full-catalog fallback)", titles(got))
	}
}

func TestRetrieve_Containment(t *testing.T) {
	catalog := entries("The Dark Knight", "Dark Knight Rises", "Finding Nemo")

	got := Retrieve(catalog, "dark knight", DefaultConfig())
	if len(got) != 2 {
		t.Fatalf("Retrieve returned %v, want the two Dark Knight entries", titles(got))
	}
}

func TestRetrieve_SimilarityCatchesNearMisses(t *testing.T) {
	catalog := entries("Inception", "Casablanca")

	// Misspelled query: containment fails, trigram similarity must catch it.
	got := Retrieve(catalog, "inceptoin", DefaultConfig())
	if len(got) != 1 || got[0].Title != "Inception" {
		t.Errorf("Retrieve(misspelled) returned %v, want [Inception]", titles(got))
	}
}

func TestRetrieve_StopwordOnlyQueryUsesSingleProbe(t *testing.T) {
	catalog := entries("It", "The Italian Job", "Up")

	// "it" is a stopword, so normalization falls back to the lowercased
	// original and only one probe is used.
	got := Retrieve(catalog, "It", DefaultConfig())

	found := false
	for _, m := range got {
		if m.Title == "It" {
			found = true
		}
	}
	if !found {
		t.Errorf("Retrieve(\"It\") returned %v, want a result containing \"It\"", titles(got))
	}
}

func TestRetrieve_PreservesSourceOrder(t *testing.T) {
	catalog := entries("Dark Waters", "The Dark Knight", "Dark Knight Rises")

	got := Retrieve(catalog, "dark", DefaultConfig())
	for i := 1; i < len(got); i++ {
		if got[i].ID <= got[i-1].ID {
			t.Fatalf("Retrieve reordered candidates: %v", titles(got))
		}
	}
}

func TestRetrieve_RawProbeStricterFloor(t *testing.T) {
	cfg := DefaultConfig()
	catalog := entries("Knight and Day")

	// Cleaned query "knight day" shares enough trigrams to pass the loose
	// floor even though the raw form differs.
	got := Retrieve(catalog, "the knight day", cfg)
	if len(got) != 1 {
		t.Errorf("Retrieve returned %v, want [Knight and Day]", titles(got))
	}
}
