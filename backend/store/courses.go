package store

import (
	"context"
	"studyhub/backend/models"
)

// GetCourses returns the catalog. It falls back to the seed catalog when
// the record is missing or unreadable.
func (s *Store) GetCourses(ctx context.Context) []models.Course {
	courses, err := s.LoadCourses(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read courses, serving seed catalog")
		return models.SeedCourses()
	}
	return courses
}

// LoadCourses reports unreadable records to the caller. A record that was
// never written still yields the seed catalog.
func (s *Store) LoadCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := s.get(ctx, KeyCourses, &courses); err != nil {
		if isNotFound(err) {
			return models.SeedCourses(), nil
		}
		return nil, err
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

func (s *Store) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	c := models.FindCourse(s.GetCourses(ctx), courseID)
	if c == nil {
		return nil, ErrCourseNotFound
	}
	return c, nil
}

// AddCourse assigns an id and creation time and appends the course.
// TotalLessons is stored as given.
func (s *Store) AddCourse(ctx context.Context, in models.NewCourse) (*models.Course, error) {
	if err := s.validateStruct(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	courses, err := s.LoadCourses(ctx)
	if err != nil {
		return nil, err
	}
	course := models.Course{
		ID:             s.newID(),
		Title:          in.Title,
		Description:    in.Description,
		Thumbnail:      in.Thumbnail,
		InstructorID:   in.InstructorID,
		InstructorName: in.InstructorName,
		Category:       in.Category,
		Difficulty:     in.Difficulty,
		IsPublished:    in.IsPublished,
		TotalLessons:   in.TotalLessons,
		CreatedAt:      s.now().UTC(),
		Modules:        in.Modules,
	}
	if course.Modules == nil {
		course.Modules = []models.Module{}
	}
	courses = append(courses, course)

	if err := s.put(ctx, KeyCourses, courses); err != nil {
		return nil, err
	}
	s.log.Info().Str("course_id", course.ID).Msg("course added")
	s.notifier.Notify()
	return &course, nil
}

// UpdateCourse shallow-merges patch into the course. An unknown id
// returns ErrCourseNotFound without notifying.
func (s *Store) UpdateCourse(ctx context.Context, courseID string, patch models.CoursePatch) error {
	if err := s.validateStruct(patch); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	courses, err := s.LoadCourses(ctx)
	if err != nil {
		return err
	}
	c := models.FindCourse(courses, courseID)
	if c == nil {
		return ErrCourseNotFound
	}
	patch.Apply(c)

	if err := s.put(ctx, KeyCourses, courses); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

// DeleteCourse removes the course with courseID. Subscribers are notified
// even when no course matched.
func (s *Store) DeleteCourse(ctx context.Context, courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	courses, err := s.LoadCourses(ctx)
	if err != nil {
		return err
	}
	kept := courses[:0]
	for _, c := range courses {
		if c.ID != courseID {
			kept = append(kept, c)
		}
	}

	if err := s.put(ctx, KeyCourses, kept); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}
