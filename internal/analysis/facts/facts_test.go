package facts

import "testing"

func TestExtractInterest(t *testing.T) {
	found := Extract("I'm interested in data science. What courses should I take next semester?")
	if found[KeyInterest] != "data science" {
		t.Fatalf("expected data science interest, got %q", found[KeyInterest])
	}
}

func TestExtractInterestAliasNormalized(t *testing.T) {
	found := Extract("I'm interested in ML")
	if found[KeyInterest] != "data science" {
		t.Fatalf("expected ml alias to normalize to data science, got %q", found[KeyInterest])
	}
}

func TestExtractLevel(t *testing.T) {
	found := Extract("I'm an undergrad looking at electives")
	if found[KeyLevel] != "UG" {
		t.Fatalf("expected UG level, got %q", found[KeyLevel])
	}
}

func TestExtractLevelOverlappingMarkers(t *testing.T) {
	cases := map[string]string{
		"I'm an undergrad student looking for courses": "UG",
		"looking for undergraduate-level electives":    "UG",
		"I'm a grad student planning next term":        "PG",
		"are there graduate-level seminars":            "PG",
	}
	for utterance, want := range cases {
		for i := 0; i < 50; i++ {
			if got := Extract(utterance)[KeyLevel]; got != want {
				t.Fatalf("Extract(%q) level = %q, want %q", utterance, got, want)
			}
		}
	}
}

func TestExtractNothingStated(t *testing.T) {
	found := Extract("When are finals?")
	if len(found) != 0 {
		t.Fatalf("expected no facts, got %v", found)
	}
}

func TestNormalizeInterest(t *testing.T) {
	cases := map[string]string{
		"Machine Learning":          "data science",
		"AI":                        "artificial intelligence",
		"web development":           "web",
		"underwater basket weaving": "underwater basket weaving",
	}
	for input, want := range cases {
		if got := NormalizeInterest(input); got != want {
			t.Fatalf("NormalizeInterest(%q) = %q, want %q", input, got, want)
		}
	}
}
