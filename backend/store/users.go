package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"studyhub/backend/models"
)

// GetUsers returns every user. A missing or unreadable record yields an
// empty list; the failure is logged.
func (s *Store) GetUsers(ctx context.Context) []models.User {
	users, err := s.LoadUsers(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read users")
		return []models.User{}
	}
	return users
}

// LoadUsers is GetUsers with read failures reported to the caller.
func (s *Store) LoadUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.get(ctx, KeyUsers, &users); err != nil {
		if isNotFound(err) {
			return []models.User{}, nil
		}
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	users, err := s.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOfUser(users, userID)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	return &users[i], nil
}

// GetCurrentUser returns the user of the active session, or nil when
// nobody is logged in or the record is unreadable.
func (s *Store) GetCurrentUser(ctx context.Context) *models.User {
	var u models.User
	if err := s.get(ctx, KeyCurrentUser, &u); err != nil {
		if !isNotFound(err) {
			s.log.Error().Err(err).Msg("failed to read current user")
		}
		return nil
	}
	return &u
}

// RegisterUser creates a user with zeroed progress and makes it the
// current user. Emails are unique regardless of letter case.
func (s *Store) RegisterUser(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	if err := s.validateStruct(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	if indexOfEmail(users, in.Email) >= 0 {
		return nil, ErrEmailTaken
	}

	password, err := s.creds.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:                 s.newID(),
		Name:               in.Name,
		Email:              in.Email,
		Password:           password,
		Role:               in.Role,
		EnrolledCourseIDs:  []string{},
		CompletedLessonIDs: []string{},
		Achievements:       []models.Achievement{},
		Notes:              []models.Note{},
		Certificates:       []models.Certificate{},
		SubscriptionStatus: models.SubscriptionFree,
	}
	users = append(users, user)

	if err := s.put(ctx, KeyUsers, users); err != nil {
		return nil, err
	}
	if err := s.put(ctx, KeyCurrentUser, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	s.notifier.Notify()
	return &user, nil
}

// LoginUser matches email case-insensitively and the password exactly.
// Every successful call adds one to the user's streak, with no check of
// when the previous login happened.
func (s *Store) LoginUser(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOfEmail(users, email)
	if i < 0 || !s.creds.Compare(users[i].Password, password) {
		return nil, ErrInvalidCredentials
	}

	users[i].Streak++
	if err := s.put(ctx, KeyUsers, users); err != nil {
		return nil, err
	}
	if err := s.put(ctx, KeyCurrentUser, users[i]); err != nil {
		return nil, err
	}
	s.notifier.Notify()

	user := users[i]
	return &user, nil
}

func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	s.notifier.Notify()
	return nil
}

// EnrollUser adds courseID to the user's enrolled set. Enrolling twice is a
// no-op and does not notify.
func (s *Store) EnrollUser(ctx context.Context, userID, courseID string) error {
	return s.mutateUser(ctx, userID, func(u *models.User) (bool, error) {
		if u.HasEnrolled(courseID) {
			return false, nil
		}
		u.EnrolledCourseIDs = append(u.EnrolledCourseIDs, courseID)
		return true, nil
	})
}

// CompleteLesson records lessonID as completed and awards XPPerLesson the
// first time only.
func (s *Store) CompleteLesson(ctx context.Context, userID, lessonID string) error {
	return s.mutateUser(ctx, userID, func(u *models.User) (bool, error) {
		if u.HasCompleted(lessonID) {
			return false, nil
		}
		u.CompletedLessonIDs = append(u.CompletedLessonIDs, lessonID)
		u.XP += XPPerLesson
		return true, nil
	})
}

// UpdateUser shallow-merges patch into the user. A new email must not
// belong to another user; a new password goes through Credentials.
func (s *Store) UpdateUser(ctx context.Context, userID string, patch models.UserPatch) error {
	if err := s.validateStruct(patch); err != nil {
		return err
	}
	if patch.Password != nil {
		hashed, err := s.creds.Hash(*patch.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		patch.Password = &hashed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.LoadUsers(ctx)
	if err != nil {
		return err
	}
	i := indexOfUser(users, userID)
	if i < 0 {
		return ErrUserNotFound
	}
	if patch.Email != nil {
		if j := indexOfEmail(users, *patch.Email); j >= 0 && j != i {
			return ErrEmailTaken
		}
	}
	patch.Apply(&users[i])
	return s.commitUsers(ctx, users, i)
}

// AddAchievement appends a to the user's achievements. Duplicates are not
// filtered; callers check HasAchievement first.
func (s *Store) AddAchievement(ctx context.Context, userID string, a models.Achievement) error {
	if err := s.validateStruct(a); err != nil {
		return err
	}
	return s.mutateUser(ctx, userID, func(u *models.User) (bool, error) {
		u.Achievements = append(u.Achievements, a)
		return true, nil
	})
}

func (s *Store) AddNote(ctx context.Context, userID string, note models.Note) (*models.Note, error) {
	if err := s.validateStruct(note); err != nil {
		return nil, err
	}
	note.ID = s.newID()
	note.CreatedAt = s.now().UTC()

	err := s.mutateUser(ctx, userID, func(u *models.User) (bool, error) {
		u.Notes = append(u.Notes, note)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// IssueCertificate grants a certificate for a course whose every lesson
// the user has completed. A second call returns the existing certificate.
func (s *Store) IssueCertificate(ctx context.Context, userID, courseID string) (*models.Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	courses, err := s.LoadCourses(ctx)
	if err != nil {
		return nil, err
	}
	course := models.FindCourse(courses, courseID)
	if course == nil {
		return nil, ErrCourseNotFound
	}

	users, err := s.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOfUser(users, userID)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	u := &users[i]
	if existing := u.CertificateFor(courseID); existing != nil {
		return existing, nil
	}
	if !u.HasEnrolled(courseID) {
		return nil, ErrNotEnrolled
	}
	p := models.ProgressFor(u, course)
	if p.TotalLessons == 0 || p.LessonsCompleted < p.TotalLessons {
		return nil, ErrCourseIncomplete
	}

	cert := models.Certificate{
		ID:          s.newID(),
		CourseID:    course.ID,
		CourseTitle: course.Title,
		IssuedAt:    s.now().UTC(),
	}
	u.Certificates = append(u.Certificates, cert)
	if err := s.commitUsers(ctx, users, i); err != nil {
		return nil, err
	}
	return &cert, nil
}

// Leaderboard ranks users by XP, then streak. A limit <= 0 returns all.
func (s *Store) Leaderboard(ctx context.Context, limit int) []models.User {
	users := s.GetUsers(ctx)
	sort.SliceStable(users, func(a, b int) bool {
		if users[a].XP != users[b].XP {
			return users[a].XP > users[b].XP
		}
		return users[a].Streak > users[b].Streak
	})
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users
}

// mutateUser runs fn on the stored user and commits when fn reports a change.
func (s *Store) mutateUser(ctx context.Context, userID string, fn func(u *models.User) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.LoadUsers(ctx)
	if err != nil {
		return err
	}
	i := indexOfUser(users, userID)
	if i < 0 {
		return ErrUserNotFound
	}
	changed, err := fn(&users[i])
	if err != nil || !changed {
		return err
	}
	return s.commitUsers(ctx, users, i)
}

// commitUsers writes users, refreshes the current-user copy when it points
// at users[i], and notifies. Callers hold s.mu.
func (s *Store) commitUsers(ctx context.Context, users []models.User, i int) error {
	if err := s.put(ctx, KeyUsers, users); err != nil {
		return err
	}
	if err := s.refreshCurrentUser(ctx, users[i]); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *Store) refreshCurrentUser(ctx context.Context, u models.User) error {
	var current models.User
	if err := s.get(ctx, KeyCurrentUser, &current); err != nil {
		if isNotFound(err) {
			return nil
		}
		s.log.Warn().Err(err).Msg("current user unreadable, not refreshed")
		return nil
	}
	if current.ID != u.ID {
		return nil
	}
	return s.put(ctx, KeyCurrentUser, u)
}

func indexOfUser(users []models.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfEmail(users []models.User, email string) int {
	email = strings.TrimSpace(email)
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return i
		}
	}
	return -1
}
