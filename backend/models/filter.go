package models

import "strings"

type CourseFilter struct {
	Search        string
	Category      string
	Difficulty    Difficulty
	PublishedOnly bool
}

// FilterCourses keeps courses matching every set criterion. Search is a
// case-insensitive substring match on title, description and instructor
// name; category and difficulty match exactly, ignoring case.
func FilterCourses(courses []Course, f CourseFilter) []Course {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	result := make([]Course, 0, len(courses))
	for _, c := range courses {
		if f.PublishedOnly && !c.IsPublished {
			continue
		}
		if f.Category != "" && !strings.EqualFold(c.Category, f.Category) {
			continue
		}
		if f.Difficulty != "" && !strings.EqualFold(string(c.Difficulty), string(f.Difficulty)) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Title), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) &&
			!strings.Contains(strings.ToLower(c.InstructorName), search) {
			continue
		}
		result = append(result, c)
	}
	return result
}

// FindCourse returns the course with the given id, or nil.
func FindCourse(courses []Course, id string) *Course {
	for i := range courses {
		if courses[i].ID == id {
			return &courses[i]
		}
	}
	return nil
}
