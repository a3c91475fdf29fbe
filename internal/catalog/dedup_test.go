package catalog

import "testing"

func TestFindDuplicate_ExactTitleAndYear(t *testing.T) {
	entries := []Movie{
		{ID: 1, Title: "Inception", Year: 2010},
		{ID: 2, Title: "Interstellar", Year: 2014},
	}

	dup := FindDuplicate(entries, "inception", 2010, "", DefaultConfig().DuplicateSimilarityFloor)
	if dup == nil {
		t.Fatal("FindDuplicate() = nil, want match on case-insensitive title")
	}
	if dup.ID != 1 {
		t.Errorf("FindDuplicate() ID = %d, want 1", dup.ID)
	}
}

func TestFindDuplicate_SameTitleDifferentYear(t *testing.T) {
	entries := []Movie{
		{ID: 1, Title: "King Kong", Year: 1933},
	}

	if dup := FindDuplicate(entries, "King Kong", 2005, "", DefaultConfig().DuplicateSimilarityFloor); dup != nil {
		t.Errorf("FindDuplicate() = %+v, want nil for a remake in a different year", dup)
	}
}

func TestFindDuplicate_NearTitleMatchWithPoster(t *testing.T) {
	entries := []Movie{
		{ID: 1, Title: "Inception", Year: 2010, PosterURL: "https://img.example/inception.jpg"},
	}

	// Same year, same poster, title close enough to clear the similarity floor.
	dup := FindDuplicate(entries, "Inception.", 2010, "https://img.example/inception.jpg", DefaultConfig().DuplicateSimilarityFloor)
	if dup == nil {
		t.Fatal("FindDuplicate() = nil, want near-title match backed by identical poster")
	}
	if dup.ID != 1 {
		t.Errorf("FindDuplicate() ID = %d, want 1", dup.ID)
	}
}

func TestFindDuplicate_EmptyPostersNeverCorroborate(t *testing.T) {
	entries := []Movie{
		{ID: 1, Title: "Inceptions", Year: 2010, PosterURL: ""},
	}

	// Near-identical title and year, but both posters empty: without the
	// poster evidence the fuzzy branch must not fire.
	if dup := FindDuplicate(entries, "Inception", 2010, "", DefaultConfig().DuplicateSimilarityFloor); dup != nil {
		t.Errorf("FindDuplicate() = %+v, want nil when posters are empty", dup)
	}
}

func TestFindDuplicate_DissimilarTitles(t *testing.T) {
	entries := []Movie{
		{ID: 1, Title: "Casablanca", Year: 1942, PosterURL: "https://img.example/p.jpg"},
	}

	if dup := FindDuplicate(entries, "Citizen Kane", 1942, "https://img.example/p.jpg", DefaultConfig().DuplicateSimilarityFloor); dup != nil {
		t.Errorf("FindDuplicate() = %+v, want nil for unrelated titles", dup)
	}
}
