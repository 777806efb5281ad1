package models

type CourseProgress struct {
	CourseID         string  `json:"courseId"`
	Title            string  `json:"title"`
	LessonsCompleted int     `json:"lessonsCompleted"`
	TotalLessons     int     `json:"totalLessons"`
	CompletionRate   float64 `json:"completionRate"`
}

type ProgressOverview struct {
	XP                   int              `json:"xp"`
	Streak               int              `json:"streak"`
	EnrolledCourses      int              `json:"enrolledCourses"`
	LessonsCompleted     int              `json:"lessonsCompleted"`
	CertificatesEarned   int              `json:"certificatesEarned"`
	AchievementsUnlocked int              `json:"achievementsUnlocked"`
	Courses              []CourseProgress `json:"courses"`
}

// ProgressFor counts the course's lessons the user has completed. The
// total is taken from the modules, not the denormalized TotalLessons.
func ProgressFor(u *User, c *Course) CourseProgress {
	p := CourseProgress{CourseID: c.ID, Title: c.Title}
	for _, l := range c.Lessons() {
		p.TotalLessons++
		if u.HasCompleted(l.ID) {
			p.LessonsCompleted++
		}
	}
	if p.TotalLessons > 0 {
		p.CompletionRate = float64(p.LessonsCompleted) * 100 / float64(p.TotalLessons)
	}
	return p
}
