package store

import (
	"context"
	"studyhub/backend/models"
	"studyhub/backend/storage"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCourse(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	notified := countNotifications(s)

	course, err := s.AddCourse(ctx, models.NewCourse{
		Title:        "Go for Mobile Backends",
		Difficulty:   models.Intermediate,
		Category:     "Programming",
		TotalLessons: 12,
		Modules: []models.Module{
			{ID: "module-1", Title: "Basics", Lessons: []models.Lesson{{ID: "lesson-go-1", Title: "Hello"}}},
		},
	})
	require.NoError(t, err)
	s.WaitNotified()

	assert.Equal(t, "id-1", course.ID)
	assert.Equal(t, fixedNow, course.CreatedAt)
	assert.Equal(t, 12, course.TotalLessons)
	assert.Equal(t, int32(1), notified.Load())

	courses := s.GetCourses(ctx)
	require.Len(t, courses, 4)
	assert.Equal(t, *course, courses[3])
}

func TestAddCourseRejectsInvalidInput(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	notified := countNotifications(s)

	_, err := s.AddCourse(ctx, models.NewCourse{Title: "No level", Difficulty: "Expert"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	s.WaitNotified()
	assert.Zero(t, notified.Load())
	assert.Len(t, s.GetCourses(ctx), 3)
}

func TestUpdateCourseMergesAndSkipsNotifyOnMiss(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	notified := countNotifications(s)

	before, err := s.GetCourse(ctx, "course-2")
	require.NoError(t, err)

	title := "Design Principles for Mobile"
	published := false
	require.NoError(t, s.UpdateCourse(ctx, "course-2", models.CoursePatch{Title: &title, IsPublished: &published}))
	s.WaitNotified()
	assert.Equal(t, int32(1), notified.Load())

	after, err := s.GetCourse(ctx, "course-2")
	require.NoError(t, err)
	assert.Equal(t, title, after.Title)
	assert.False(t, after.IsPublished)

	expected := *before
	expected.Title = title
	expected.IsPublished = false
	assert.Equal(t, expected, *after)

	err = s.UpdateCourse(ctx, "course-404", models.CoursePatch{Title: &title})
	assert.ErrorIs(t, err, ErrCourseNotFound)
	s.WaitNotified()
	assert.Equal(t, int32(1), notified.Load())
}

func TestDeleteCourse(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	notified := countNotifications(s)

	require.NoError(t, s.DeleteCourse(ctx, "course-2"))
	s.WaitNotified()
	assert.Equal(t, int32(1), notified.Load())

	ids := []string{}
	for _, c := range s.GetCourses(ctx) {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"course-1", "course-3"}, ids)
}

func TestDeleteCourseUnknownIDNotifiesAndKeepsCatalog(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	before := s.GetCourses(ctx)
	notified := countNotifications(s)

	require.NoError(t, s.DeleteCourse(ctx, "course-404"))
	s.WaitNotified()

	assert.Equal(t, int32(1), notified.Load())
	assert.Equal(t, before, s.GetCourses(ctx))
}

func TestDeleteCourseRefusesCorruptCatalog(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	s := newTestStore(t, backend)
	require.NoError(t, backend.Set(ctx, KeyCourses, []byte(`not json`)))
	notified := countNotifications(s)

	assert.ErrorIs(t, s.DeleteCourse(ctx, "course-1"), ErrCorrupt)
	s.WaitNotified()
	assert.Zero(t, notified.Load())

	raw, err := backend.Get(ctx, KeyCourses)
	require.NoError(t, err)
	assert.Equal(t, `not json`, string(raw))
}
