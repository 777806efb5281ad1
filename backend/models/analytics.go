package models

import "sort"

type LessonStat struct {
	LessonID    string `json:"lessonId"`
	LessonTitle string `json:"lessonTitle"`
	Completed   int    `json:"completed"`
}

// CourseAnalytics aggregates the progress of every user enrolled in a course.
type CourseAnalytics struct {
	CourseID          string       `json:"courseId"`
	CourseTitle       string       `json:"courseTitle"`
	Enrollments       int          `json:"enrollments"`
	Completed         int          `json:"completed"`
	Certificates      int          `json:"certificates"`
	AvgCompletionRate float64      `json:"avgCompletionRate"`
	LessonStats       []LessonStat `json:"lessonStats"`
}

type PlatformAnalytics struct {
	TotalUsers        int               `json:"totalUsers"`
	Students          int               `json:"students"`
	Instructors       int               `json:"instructors"`
	PremiumUsers      int               `json:"premiumUsers"`
	TotalCourses      int               `json:"totalCourses"`
	PublishedCourses  int               `json:"publishedCourses"`
	TotalEnrollments  int               `json:"totalEnrollments"`
	AvgCourseProgress float64           `json:"avgCourseProgress"`
	PopularCourses    []CourseAnalytics `json:"popularCourses"`
}

// AnalyzeCourse counts only enrolled users. Lesson stats follow module order.
func AnalyzeCourse(c *Course, users []User) CourseAnalytics {
	a := CourseAnalytics{
		CourseID:    c.ID,
		CourseTitle: c.Title,
		LessonStats: []LessonStat{},
	}
	lessons := c.Lessons()
	for _, l := range lessons {
		a.LessonStats = append(a.LessonStats, LessonStat{LessonID: l.ID, LessonTitle: l.Title})
	}

	var rateSum float64
	for i := range users {
		u := &users[i]
		if !u.HasEnrolled(c.ID) {
			continue
		}
		a.Enrollments++
		p := ProgressFor(u, c)
		rateSum += p.CompletionRate
		if p.TotalLessons > 0 && p.LessonsCompleted == p.TotalLessons {
			a.Completed++
		}
		if u.CertificateFor(c.ID) != nil {
			a.Certificates++
		}
		for j, l := range lessons {
			if u.HasCompleted(l.ID) {
				a.LessonStats[j].Completed++
			}
		}
	}
	if a.Enrollments > 0 {
		a.AvgCompletionRate = rateSum / float64(a.Enrollments)
	}
	return a
}

// AnalyzePlatform summarizes users and courses. PopularCourses holds at most
// top courses ordered by enrollments; ties keep catalog order.
func AnalyzePlatform(courses []Course, users []User, top int) PlatformAnalytics {
	p := PlatformAnalytics{
		TotalUsers:   len(users),
		TotalCourses: len(courses),
	}
	for _, u := range users {
		switch u.Role {
		case RoleStudent:
			p.Students++
		case RoleInstructor:
			p.Instructors++
		}
		if u.SubscriptionStatus == SubscriptionPremium {
			p.PremiumUsers++
		}
	}

	all := make([]CourseAnalytics, 0, len(courses))
	var rateSum float64
	for i := range courses {
		if courses[i].IsPublished {
			p.PublishedCourses++
		}
		a := AnalyzeCourse(&courses[i], users)
		p.TotalEnrollments += a.Enrollments
		rateSum += a.AvgCompletionRate * float64(a.Enrollments)
		all = append(all, a)
	}
	if p.TotalEnrollments > 0 {
		p.AvgCourseProgress = rateSum / float64(p.TotalEnrollments)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Enrollments > all[j].Enrollments
	})
	if top >= 0 && len(all) > top {
		all = all[:top]
	}
	p.PopularCourses = all
	return p
}
