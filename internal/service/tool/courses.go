package tool

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/campus-copilot/backend/internal/model/catalog"
)

const (
	defaultLimit = 4
	maxLimit     = 10
)

var vizSynonyms = []string{
	"visualization", "visualisation", "viz", "tableau",
	"chart", "charts", "graph", "graphs", "d3", "d3.js",
}

var punctStripper = regexp.MustCompile(`[^a-z0-9\s\-]`)

// RecommendCourses builds the course recommendation tool over the catalog.
// Args: interest (required), limit, type ("core"/"elective"), level ("UG"/"PG").
// The result is a JSON array of course records.
func RecommendCourses(store catalog.Store) Func {
	return func(_ context.Context, args map[string]string) (string, error) {
		interest := args["interest"]
		key := normalizeInterest(interest, store)

		items, known := store.Find(key)
		if !known {
			// Cross-category elective search for visualization-flavored asks.
			items = matchElectivesByKeyword(store, key)
		}

		typeFilter := strings.ToLower(strings.TrimSpace(args["type"]))
		level := strings.ToUpper(strings.TrimSpace(args["level"]))

		// Beginner phrasing without explicit filters narrows to UG electives.
		if typeFilter == "" && level == "" && isBeginnerAsk(interest) {
			typeFilter = "elective"
			level = "UG"
		}

		if typeFilter != "" {
			items = filterCourses(items, func(c catalog.Course) bool {
				return strings.EqualFold(c.Type, typeFilter)
			})
		}
		if level != "" {
			items = filterCourses(items, func(c catalog.Course) bool {
				return strings.EqualFold(c.Level, level)
			})
		}

		// Filters that empty a known category fall back to its first entries.
		if len(items) == 0 && known {
			all, _ := store.Find(key)
			if len(all) > defaultLimit {
				all = all[:defaultLimit]
			}
			items = all
		}

		limit := defaultLimit
		if raw := strings.TrimSpace(args["limit"]); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				limit = parsed
			}
		}
		if limit < 1 {
			limit = 1
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		if len(items) > limit {
			items = items[:limit]
		}

		payload, err := json.Marshal(items)
		if err != nil {
			return "", err
		}
		return string(payload), nil
	}
}

// normalizeInterest reduces a free-form interest to a catalog category key.
func normalizeInterest(interest string, store catalog.Store) string {
	raw := punctStripper.ReplaceAllString(strings.ToLower(strings.TrimSpace(interest)), "")
	key := strings.Join(strings.Fields(strings.ReplaceAll(raw, "-", " ")), " ")
	compact := strings.ReplaceAll(key, " ", "")

	aliases := catalog.Aliases()
	for _, candidate := range []string{key, compact, strings.ReplaceAll(key, " ", "-")} {
		if canonical, ok := aliases[candidate]; ok {
			return canonical
		}
	}

	if _, ok := store.Find(key); ok {
		return key
	}

	// Substring match against known categories ("ds and data science stuff").
	for _, category := range store.Categories() {
		if strings.Contains(key, category) {
			return category
		}
	}

	return key
}

func matchElectivesByKeyword(store catalog.Store, interestKey string) []catalog.Course {
	wantsViz := false
	for _, marker := range []string{"visualization", "visualisation", "viz"} {
		if strings.Contains(interestKey, marker) {
			wantsViz = true
			break
		}
	}
	if !wantsViz {
		return nil
	}

	synonyms := make(map[string]bool, len(vizSynonyms))
	for _, s := range vizSynonyms {
		synonyms[s] = true
	}

	var items []catalog.Course
	for _, category := range store.Categories() {
		courses, _ := store.Find(category)
		for _, c := range courses {
			if !strings.EqualFold(c.Type, "elective") {
				continue
			}
			if courseMentions(c, synonyms) {
				items = append(items, c)
			}
		}
	}
	return items
}

func courseMentions(c catalog.Course, synonyms map[string]bool) bool {
	for _, word := range strings.Fields(strings.ToLower(c.Title)) {
		if synonyms[word] {
			return true
		}
	}
	for _, tag := range c.Tags {
		if synonyms[strings.ToLower(tag)] {
			return true
		}
	}
	return false
}

func isBeginnerAsk(interest string) bool {
	lowered := strings.ToLower(interest)
	for _, word := range []string{"beginner", "beginners", "intro", "introductory", "foundation", "foundations"} {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

func filterCourses(items []catalog.Course, keep func(catalog.Course) bool) []catalog.Course {
	filtered := items[:0:0]
	for _, c := range items {
		if keep(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
