package store

import (
	"context"
	"fmt"
	"studyhub/backend/models"
	"studyhub/backend/storage"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, backend storage.Backend, opts ...Option) *Store {
	t.Helper()
	var seq int
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	}, opts...)

	s, err := New(context.Background(), backend, opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// countNotifications subscribes a counter to s.
func countNotifications(s *Store) *atomic.Int32 {
	var n atomic.Int32
	s.Subscribe(func() { n.Add(1) })
	return &n
}

func register(t *testing.T, s *Store, name, email string) *models.User {
	t.Helper()
	u, err := s.RegisterUser(context.Background(), models.RegisterInput{
		Name: name, Email: email, Password: "secret1", Role: models.RoleStudent,
	})
	require.NoError(t, err)
	return u
}

func TestNewSeedsCoursesAndUsers(t *testing.T) {
	backend := storage.NewMemory()
	s := newTestStore(t, backend)
	ctx := context.Background()

	courses := s.GetCourses(ctx)
	require.Len(t, courses, 3)
	assert.Equal(t, "course-1", courses[0].ID)
	for _, c := range courses {
		assert.GreaterOrEqual(t, len(c.Modules), 2)
		assert.LessOrEqual(t, len(c.Modules), 3)
	}

	raw, err := backend.Get(ctx, KeyUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
	assert.Empty(t, s.GetUsers(ctx))
	assert.Nil(t, s.GetCurrentUser(ctx))
}

func TestNewDoesNotReseedWrittenEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	require.NoError(t, backend.Set(ctx, KeyCourses, []byte(`[]`)))

	s := newTestStore(t, backend)
	assert.Empty(t, s.GetCourses(ctx))
}

func TestSeedUnaffectedByUserWrites(t *testing.T) {
	backend := storage.NewMemory()
	s := newTestStore(t, backend)
	ctx := context.Background()

	before, err := backend.Get(ctx, KeyCourses)
	require.NoError(t, err)
	s.GetCourses(ctx)
	register(t, s, "Ada", "ada@example.com")

	after, err := backend.Get(ctx, KeyCourses)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.Equal(t, models.SeedCourses(), s.GetCourses(ctx))
}

func TestCorruptRecordsDegradeToDefaults(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	s := newTestStore(t, backend)

	require.NoError(t, backend.Set(ctx, KeyUsers, []byte(`{not json`)))
	require.NoError(t, backend.Set(ctx, KeyCourses, []byte(`"oops"`)))
	require.NoError(t, backend.Set(ctx, KeyCurrentUser, []byte(`[1,2`)))

	assert.Empty(t, s.GetUsers(ctx))
	assert.Equal(t, models.SeedCourses(), s.GetCourses(ctx))
	assert.Nil(t, s.GetCurrentUser(ctx))

	_, err := s.LoadUsers(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
	_, err = s.LoadCourses(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestMutationsRefuseToOverwriteCorruptRecords(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	s := newTestStore(t, backend)
	notified := countNotifications(s)

	require.NoError(t, backend.Set(ctx, KeyUsers, []byte(`{not json`)))
	_, err := s.RegisterUser(ctx, models.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: models.RoleStudent,
	})
	assert.ErrorIs(t, err, ErrCorrupt)

	raw, err := backend.Get(ctx, KeyUsers)
	require.NoError(t, err)
	assert.Equal(t, `{not json`, string(raw))
	s.WaitNotified()
	assert.Zero(t, notified.Load())
}

func TestRegisterUser(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	notified := countNotifications(s)

	u := register(t, s, "Ada", "ada@example.com")
	assert.Equal(t, "id-1", u.ID)
	assert.Equal(t, 0, u.XP)
	assert.Equal(t, 0, u.Streak)
	assert.Empty(t, u.EnrolledCourseIDs)
	assert.Empty(t, u.CompletedLessonIDs)
	assert.Equal(t, models.SubscriptionFree, u.SubscriptionStatus)

	current := s.GetCurrentUser(ctx)
	require.NotNil(t, current)
	assert.Equal(t, *u, *current)
	assert.Len(t, s.GetUsers(ctx), 1)

	s.WaitNotified()
	assert.Equal(t, int32(1), notified.Load())
}

func TestRegisterRejectsEmailDifferingOnlyInCase(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	original := register(t, s, "Ada", "ada@example.com")

	u, err := s.RegisterUser(ctx, models.RegisterInput{
		Name: "Impostor", Email: "ADA@Example.COM", Password: "other", Role: models.RoleInstructor,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, u)

	users := s.GetUsers(ctx)
	require.Len(t, users, 1)
	assert.Equal(t, *original, users[0])
}

func TestRegisterValidatesInput(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()

	cases := []models.RegisterInput{
		{Name: "", Email: "a@b.co", Password: "x", Role: models.RoleStudent},
		{Name: "A", Email: "not-an-email", Password: "x", Role: models.RoleStudent},
		{Name: "A", Email: "a@b.co", Password: "", Role: models.RoleStudent},
		{Name: "A", Email: "a@b.co", Password: "x", Role: "admin"},
	}
	for _, in := range cases {
		_, err := s.RegisterUser(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", in)
	}
	assert.Empty(t, s.GetUsers(ctx))
}

func TestLoginUser(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	register(t, s, "Ada", "ada@example.com")
	require.NoError(t, s.Logout(ctx))

	u, err := s.LoginUser(ctx, "ADA@EXAMPLE.COM", "secret1")
	require.NoError(t, err)
	assert.Equal(t, 1, u.Streak)
	assert.Equal(t, *u, *s.GetCurrentUser(ctx))

	// no day-boundary check: every login counts
	u, err = s.LoginUser(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, 2, u.Streak)
	assert.Equal(t, 2, s.GetUsers(ctx)[0].Streak)
}

func TestLoginUserRejectsBadCredentials(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	register(t, s, "Ada", "ada@example.com")
	require.NoError(t, s.Logout(ctx))
	s.WaitNotified()
	notified := countNotifications(s)

	_, err := s.LoginUser(ctx, "ada@example.com", "SECRET1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.LoginUser(ctx, "bob@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Nil(t, s.GetCurrentUser(ctx))
	assert.Equal(t, 0, s.GetUsers(ctx)[0].Streak)
	s.WaitNotified()
	assert.Zero(t, notified.Load())
}

func TestLogout(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	register(t, s, "Ada", "ada@example.com")
	s.WaitNotified()
	notified := countNotifications(s)

	require.NoError(t, s.Logout(ctx))
	assert.Nil(t, s.GetCurrentUser(ctx))
	assert.Len(t, s.GetUsers(ctx), 1)
	s.WaitNotified()
	assert.Equal(t, int32(1), notified.Load())
}

func TestEndToEndScenario(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()

	ada, err := s.RegisterUser(ctx, models.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: models.RoleStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, ada.XP)
	assert.Equal(t, 0, ada.Streak)

	ada, err = s.LoginUser(ctx, "ADA@EXAMPLE.COM", "secret1")
	require.NoError(t, err)
	assert.Equal(t, 1, ada.Streak)

	require.NoError(t, s.EnrollUser(ctx, ada.ID, "course-1"))
	assert.Equal(t, []string{"course-1"}, s.GetCurrentUser(ctx).EnrolledCourseIDs)

	require.NoError(t, s.CompleteLesson(ctx, ada.ID, "lesson-1"))
	current := s.GetCurrentUser(ctx)
	assert.Equal(t, []string{"lesson-1"}, current.CompletedLessonIDs)
	assert.Equal(t, 50, current.XP)

	require.NoError(t, s.CompleteLesson(ctx, ada.ID, "lesson-1"))
	assert.Equal(t, 50, s.GetCurrentUser(ctx).XP)
	assert.Equal(t, 50, s.GetUsers(ctx)[0].XP)
}

func TestEnrollUserIsIdempotent(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	ada := register(t, s, "Ada", "ada@example.com")
	s.WaitNotified()
	notified := countNotifications(s)

	require.NoError(t, s.EnrollUser(ctx, ada.ID, "course-2"))
	s.WaitNotified()
	assert.Equal(t, int32(1), notified.Load())

	require.NoError(t, s.EnrollUser(ctx, ada.ID, "course-2"))
	s.WaitNotified()
	assert.Equal(t, int32(1), notified.Load())

	u, err := s.GetUser(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"course-2"}, u.EnrolledCourseIDs)
}

func TestEnrollUnknownUser(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	assert.ErrorIs(t, s.EnrollUser(context.Background(), "nobody", "course-1"), ErrUserNotFound)
}

func TestCompleteLessonAwardsXPOnce(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	ada := register(t, s, "Ada", "ada@example.com")
	s.WaitNotified()
	notified := countNotifications(s)

	require.NoError(t, s.CompleteLesson(ctx, ada.ID, "lesson-3"))
	require.NoError(t, s.CompleteLesson(ctx, ada.ID, "lesson-3"))
	require.NoError(t, s.CompleteLesson(ctx, ada.ID, "lesson-4"))

	u, err := s.GetUser(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, 2*XPPerLesson, u.XP)
	assert.Equal(t, []string{"lesson-3", "lesson-4"}, u.CompletedLessonIDs)
	s.WaitNotified()
	assert.Equal(t, int32(2), notified.Load())
}

func TestUpdateUserRefreshesCurrentUserOnlyWhenItMatches(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	ada := register(t, s, "Ada", "ada@example.com")
	bob := register(t, s, "Bob", "bob@example.com") // bob is now current

	name := "Ada Lovelace"
	require.NoError(t, s.UpdateUser(ctx, ada.ID, models.UserPatch{Name: &name}))
	assert.Equal(t, bob.ID, s.GetCurrentUser(ctx).ID)
	assert.Equal(t, "Bob", s.GetCurrentUser(ctx).Name)

	avatar := "https://example.com/bob.png"
	require.NoError(t, s.UpdateUser(ctx, bob.ID, models.UserPatch{Avatar: &avatar}))
	current := s.GetCurrentUser(ctx)
	assert.Equal(t, avatar, current.Avatar)
	assert.Equal(t, "bob@example.com", current.Email)

	u, err := s.GetUser(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
}

func TestUpdateUserErrors(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	ada := register(t, s, "Ada", "ada@example.com")
	register(t, s, "Bob", "bob@example.com")
	s.WaitNotified()
	notified := countNotifications(s)

	email := "BOB@example.com"
	assert.ErrorIs(t, s.UpdateUser(ctx, ada.ID, models.UserPatch{Email: &email}), ErrEmailTaken)

	name := "x"
	assert.ErrorIs(t, s.UpdateUser(ctx, "missing", models.UserPatch{Name: &name}), ErrUserNotFound)

	xp := -5
	assert.ErrorIs(t, s.UpdateUser(ctx, ada.ID, models.UserPatch{XP: &xp}), ErrInvalidInput)

	s.WaitNotified()
	assert.Zero(t, notified.Load())
}

func TestUpdateUserOwnEmailCaseChange(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	ada := register(t, s, "Ada", "ada@example.com")

	email := "Ada@Example.com"
	require.NoError(t, s.UpdateUser(ctx, ada.ID, models.UserPatch{Email: &email}))
	assert.Equal(t, email, s.GetCurrentUser(ctx).Email)
}

func TestAddAchievementKeepsDuplicates(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	ada := register(t, s, "Ada", "ada@example.com")
	a := models.Achievement{ID: "first-lesson", Title: "First Steps", Unlocked: true, Icon: "footsteps"}

	require.NoError(t, s.AddAchievement(ctx, ada.ID, a))
	require.NoError(t, s.AddAchievement(ctx, ada.ID, a))
	assert.Len(t, s.GetCurrentUser(ctx).Achievements, 2)

	assert.ErrorIs(t, s.AddAchievement(ctx, ada.ID, models.Achievement{}), ErrInvalidInput)
	assert.ErrorIs(t, s.AddAchievement(ctx, "missing", a), ErrUserNotFound)
}

func TestAwardAchievementsSkipsHeld(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	ada := register(t, s, "Ada", "ada@example.com")
	require.NoError(t, s.CompleteLesson(ctx, ada.ID, "lesson-1"))
	require.NoError(t, s.CompleteLesson(ctx, ada.ID, "lesson-2"))

	earned, err := s.AwardAchievements(ctx, ada.ID)
	require.NoError(t, err)
	ids := make([]string, 0, len(earned))
	for _, a := range earned {
		assert.True(t, a.Unlocked)
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"first-lesson", "xp-100"}, ids)

	earned, err = s.AwardAchievements(ctx, ada.ID)
	require.NoError(t, err)
	assert.Empty(t, earned)
	assert.Len(t, s.GetCurrentUser(ctx).Achievements, 2)
}

func TestAddNote(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	ada := register(t, s, "Ada", "ada@example.com")

	note, err := s.AddNote(ctx, ada.ID, models.Note{CourseID: "course-1", LessonID: "lesson-1", Text: "loops!"})
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, fixedNow, note.CreatedAt)
	assert.Equal(t, []models.Note{*note}, s.GetCurrentUser(ctx).Notes)

	_, err = s.AddNote(ctx, ada.ID, models.Note{CourseID: "course-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIssueCertificate(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	ada := register(t, s, "Ada", "ada@example.com")

	_, err := s.IssueCertificate(ctx, ada.ID, "course-2")
	assert.ErrorIs(t, err, ErrNotEnrolled)

	require.NoError(t, s.EnrollUser(ctx, ada.ID, "course-2"))
	require.NoError(t, s.CompleteLesson(ctx, ada.ID, "lesson-7"))
	_, err = s.IssueCertificate(ctx, ada.ID, "course-2")
	assert.ErrorIs(t, err, ErrCourseIncomplete)

	for _, id := range []string{"lesson-8", "lesson-9", "lesson-10"} {
		require.NoError(t, s.CompleteLesson(ctx, ada.ID, id))
	}
	cert, err := s.IssueCertificate(ctx, ada.ID, "course-2")
	require.NoError(t, err)
	assert.Equal(t, "UI/UX Design Principles", cert.CourseTitle)
	assert.Equal(t, fixedNow, cert.IssuedAt)

	again, err := s.IssueCertificate(ctx, ada.ID, "course-2")
	require.NoError(t, err)
	assert.Equal(t, cert.ID, again.ID)
	assert.Len(t, s.GetCurrentUser(ctx).Certificates, 1)

	_, err = s.IssueCertificate(ctx, ada.ID, "course-404")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestLeaderboard(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	ada := register(t, s, "Ada", "ada@example.com")
	bob := register(t, s, "Bob", "bob@example.com")
	cy := register(t, s, "Cy", "cy@example.com")

	require.NoError(t, s.CompleteLesson(ctx, bob.ID, "lesson-1"))
	_, err := s.LoginUser(ctx, "cy@example.com", "secret1")
	require.NoError(t, err)

	board := s.Leaderboard(ctx, 0)
	require.Len(t, board, 3)
	assert.Equal(t, []string{bob.ID, cy.ID, ada.ID}, []string{board[0].ID, board[1].ID, board[2].ID})
	assert.Len(t, s.Leaderboard(ctx, 2), 2)
}

func TestBcryptCredentials(t *testing.T) {
	backend := storage.NewMemory()
	s := newTestStore(t, backend, WithCredentials(BcryptCredentials{Cost: 4}))
	ctx := context.Background()
	ada := register(t, s, "Ada", "ada@example.com")
	assert.NotEqual(t, "secret1", ada.Password)

	_, err := s.LoginUser(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	_, err = s.LoginUser(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	pw := "new-secret"
	require.NoError(t, s.UpdateUser(ctx, ada.ID, models.UserPatch{Password: &pw}))
	_, err = s.LoginUser(ctx, "ada@example.com", "new-secret")
	assert.NoError(t, err)
}

func TestCredentialsFor(t *testing.T) {
	assert.IsType(t, BcryptCredentials{}, CredentialsFor("bcrypt"))
	assert.IsType(t, PlainCredentials{}, CredentialsFor("plain"))
	assert.IsType(t, PlainCredentials{}, CredentialsFor(""))
}

func TestListenerMayMutateStore(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	ctx := context.Background()
	ada := register(t, s, "Ada", "ada@example.com")
	s.WaitNotified()

	var once sync.Once
	errs := make(chan error, 1)
	s.Subscribe(func() {
		once.Do(func() { errs <- s.CompleteLesson(ctx, ada.ID, "lesson-1") })
	})
	notified := countNotifications(s)

	require.NoError(t, s.EnrollUser(ctx, ada.ID, "course-1"))
	s.WaitNotified()
	require.NoError(t, <-errs)

	assert.Equal(t, int32(2), notified.Load())
	u, err := s.GetUser(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"lesson-1"}, u.CompletedLessonIDs)
}
