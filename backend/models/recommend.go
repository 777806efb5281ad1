package models

import "sort"

const (
	ReasonSameCategory = "More in a category you study"
	ReasonPopular      = "Popular with learners"
)

type Recommendation struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	Reason      string     `json:"reason"`
}

// Recommend suggests published courses the user is not enrolled in. Courses
// sharing a category with an enrolled course come first, the rest of the
// slots are filled by enrollment count across users.
func Recommend(u *User, courses []Course, users []User, limit int) []Recommendation {
	enrolledCategories := map[string]bool{}
	for _, id := range u.EnrolledCourseIDs {
		if c := FindCourse(courses, id); c != nil {
			enrolledCategories[c.Category] = true
		}
	}

	var candidates []Course
	for _, c := range courses {
		if c.IsPublished && !u.HasEnrolled(c.ID) {
			candidates = append(candidates, c)
		}
	}

	popularity := map[string]int{}
	for _, other := range users {
		for _, id := range other.EnrolledCourseIDs {
			popularity[id]++
		}
	}

	recs := []Recommendation{}
	picked := map[string]bool{}
	add := func(c Course, reason string) bool {
		if len(recs) >= limit {
			return false
		}
		picked[c.ID] = true
		recs = append(recs, Recommendation{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Category:    c.Category,
			Difficulty:  c.Difficulty,
			Reason:      reason,
		})
		return true
	}

	// 1. По категориям, которые пользователь уже изучает
	for _, c := range candidates {
		if enrolledCategories[c.Category] && !add(c, ReasonSameCategory) {
			return recs
		}
	}

	// 2. Популярные курсы, если не хватило рекомендаций
	sort.SliceStable(candidates, func(i, j int) bool {
		return popularity[candidates[i].ID] > popularity[candidates[j].ID]
	})
	for _, c := range candidates {
		if picked[c.ID] {
			continue
		}
		if !add(c, ReasonPopular) {
			break
		}
	}
	return recs
}
