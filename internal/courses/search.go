package courses

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/five82/notedeck/internal/backend"
)

type courseSource []backend.Course

func (s courseSource) String(i int) string {
	c := s[i]
	return c.DisplayName() + " " + c.CourseCode + " " + c.TermLabel()
}

func (s courseSource) Len() int { return len(s) }

// Search narrows list to the courses fuzzily matching query, keeping list
// order. A blank query returns list unchanged.
func Search(list []backend.Course, query string) []backend.Course {
	query = strings.TrimSpace(query)
	if query == "" || len(list) == 0 {
		return list
	}
	matches := fuzzy.FindFrom(query, courseSource(list))
	keep := make(map[int]struct{}, len(matches))
	for _, m := range matches {
		keep[m.Index] = struct{}{}
	}
	out := make([]backend.Course, 0, len(matches))
	for i, course := range list {
		if _, ok := keep[i]; ok {
			out = append(out, course)
		}
	}
	return out
}
