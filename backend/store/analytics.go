package store

import (
	"context"
	"studyhub/backend/models"
)

func (s *Store) CourseAnalytics(ctx context.Context, courseID string) (*models.CourseAnalytics, error) {
	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	a := models.AnalyzeCourse(course, s.GetUsers(ctx))
	return &a, nil
}

// PlatformAnalytics reports at most top popular courses.
func (s *Store) PlatformAnalytics(ctx context.Context, top int) models.PlatformAnalytics {
	return models.AnalyzePlatform(s.GetCourses(ctx), s.GetUsers(ctx), top)
}

func (s *Store) Recommendations(ctx context.Context, userID string, limit int) ([]models.Recommendation, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.Recommend(user, s.GetCourses(ctx), s.GetUsers(ctx), limit), nil
}
