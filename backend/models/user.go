package models

import "time"

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
)

type SubscriptionStatus string

const (
	SubscriptionFree    SubscriptionStatus = "free"
	SubscriptionPremium SubscriptionStatus = "premium"
)

type User struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Password           string             `json:"password"` // opaque, see store.Credentials
	Role               Role               `json:"role"`
	Avatar             string             `json:"avatar"`
	XP                 int                `json:"xp"`
	Streak             int                `json:"streak"`
	EnrolledCourseIDs  []string           `json:"enrolledCourses"`
	CompletedLessonIDs []string           `json:"completedLessons"`
	Achievements       []Achievement      `json:"achievements"`
	Notes              []Note             `json:"notes"`
	Certificates       []Certificate      `json:"certificates"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus"`
}

type Achievement struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Unlocked bool   `json:"unlocked"`
	Icon     string `json:"icon"`
}

type Note struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"courseId" validate:"required"`
	LessonID  string    `json:"lessonId" validate:"required"`
	Text      string    `json:"text" validate:"required,max=5000"`
	CreatedAt time.Time `json:"createdAt"`
}

type Certificate struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
	IssuedAt    time.Time `json:"issuedAt"`
}

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=student instructor"`
}

// HasEnrolled reports whether courseID is in the user's enrolled set.
func (u *User) HasEnrolled(courseID string) bool {
	return contains(u.EnrolledCourseIDs, courseID)
}

// HasCompleted reports whether lessonID is in the user's completed set.
func (u *User) HasCompleted(lessonID string) bool {
	return contains(u.CompletedLessonIDs, lessonID)
}

func (u *User) HasAchievement(id string) bool {
	for _, a := range u.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (u *User) CertificateFor(courseID string) *Certificate {
	for i := range u.Certificates {
		if u.Certificates[i].CourseID == courseID {
			return &u.Certificates[i]
		}
	}
	return nil
}

// Public returns a copy without the password, for API responses.
func (u User) Public() User {
	u.Password = ""
	return u
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
