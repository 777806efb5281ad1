package models

import "time"

type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

type Course struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Thumbnail      string     `json:"thumbnail"`
	InstructorID   string     `json:"instructorId"`
	InstructorName string     `json:"instructorName"`
	Category       string     `json:"category"`
	Difficulty     Difficulty `json:"difficulty"`
	IsPublished    bool       `json:"isPublished"`
	TotalLessons   int        `json:"totalLessons"` // denormalized, not recomputed by the store
	CreatedAt      time.Time  `json:"createdAt"`
	Modules        []Module   `json:"modules"`
}

type Module struct {
	ID      string   `json:"id" validate:"required"`
	Title   string   `json:"title" validate:"required"`
	Lessons []Lesson `json:"lessons" validate:"dive"`
}

type Lesson struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
	Duration string `json:"duration"` // display string, e.g. "10 min"
}

// NewCourse is a course as submitted by an instructor, before the store
// assigns its id and creation time.
type NewCourse struct {
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description"`
	Thumbnail      string     `json:"thumbnail"`
	InstructorID   string     `json:"instructorId"`
	InstructorName string     `json:"instructorName"`
	Category       string     `json:"category"`
	Difficulty     Difficulty `json:"difficulty" validate:"required,oneof=Beginner Intermediate Advanced"`
	IsPublished    bool       `json:"isPublished"`
	TotalLessons   int        `json:"totalLessons" validate:"gte=0"`
	Modules        []Module   `json:"modules" validate:"dive"`
}

// Lessons returns every lesson of the course in module order.
func (c *Course) Lessons() []Lesson {
	var lessons []Lesson
	for _, m := range c.Modules {
		lessons = append(lessons, m.Lessons...)
	}
	return lessons
}

func (c *Course) HasLesson(lessonID string) bool {
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			if l.ID == lessonID {
				return true
			}
		}
	}
	return false
}
