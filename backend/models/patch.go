package models

// UserPatch is a shallow partial update of a User. Nil fields are left
// untouched; slices replace the stored slice as a whole.
type UserPatch struct {
	Name               *string             `json:"name,omitempty"`
	Email              *string             `json:"email,omitempty" validate:"omitempty,email"`
	Password           *string             `json:"password,omitempty"`
	Role               *Role               `json:"role,omitempty" validate:"omitempty,oneof=student instructor"`
	Avatar             *string             `json:"avatar,omitempty"`
	XP                 *int                `json:"xp,omitempty" validate:"omitempty,gte=0"`
	Streak             *int                `json:"streak,omitempty" validate:"omitempty,gte=0"`
	EnrolledCourseIDs  *[]string           `json:"enrolledCourses,omitempty"`
	CompletedLessonIDs *[]string           `json:"completedLessons,omitempty"`
	Achievements       *[]Achievement      `json:"achievements,omitempty"`
	Notes              *[]Note             `json:"notes,omitempty"`
	Certificates       *[]Certificate      `json:"certificates,omitempty"`
	SubscriptionStatus *SubscriptionStatus `json:"subscriptionStatus,omitempty" validate:"omitempty,oneof=free premium"`
}

func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.XP != nil {
		u.XP = *p.XP
	}
	if p.Streak != nil {
		u.Streak = *p.Streak
	}
	if p.EnrolledCourseIDs != nil {
		u.EnrolledCourseIDs = *p.EnrolledCourseIDs
	}
	if p.CompletedLessonIDs != nil {
		u.CompletedLessonIDs = *p.CompletedLessonIDs
	}
	if p.Achievements != nil {
		u.Achievements = *p.Achievements
	}
	if p.Notes != nil {
		u.Notes = *p.Notes
	}
	if p.Certificates != nil {
		u.Certificates = *p.Certificates
	}
	if p.SubscriptionStatus != nil {
		u.SubscriptionStatus = *p.SubscriptionStatus
	}
}

// CoursePatch is a shallow partial update of a Course. Id and creation
// time are not patchable.
type CoursePatch struct {
	Title          *string     `json:"title,omitempty"`
	Description    *string     `json:"description,omitempty"`
	Thumbnail      *string     `json:"thumbnail,omitempty"`
	InstructorID   *string     `json:"instructorId,omitempty"`
	InstructorName *string     `json:"instructorName,omitempty"`
	Category       *string     `json:"category,omitempty"`
	Difficulty     *Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	IsPublished    *bool       `json:"isPublished,omitempty"`
	TotalLessons   *int        `json:"totalLessons,omitempty" validate:"omitempty,gte=0"`
	Modules        *[]Module   `json:"modules,omitempty"`
}

func (p CoursePatch) Apply(c *Course) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Thumbnail != nil {
		c.Thumbnail = *p.Thumbnail
	}
	if p.InstructorID != nil {
		c.InstructorID = *p.InstructorID
	}
	if p.InstructorName != nil {
		c.InstructorName = *p.InstructorName
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Difficulty != nil {
		c.Difficulty = *p.Difficulty
	}
	if p.IsPublished != nil {
		c.IsPublished = *p.IsPublished
	}
	if p.TotalLessons != nil {
		c.TotalLessons = *p.TotalLessons
	}
	if p.Modules != nil {
		c.Modules = *p.Modules
	}
}
