package store

import (
	"context"
	"studyhub/backend/models"
)

type AchievementRule struct {
	Achievement models.Achievement
	Unlocked    func(u *models.User) bool
}

var DefaultAchievementRules = []AchievementRule{
	{
		Achievement: models.Achievement{ID: "first-lesson", Title: "First Steps", Icon: "footsteps"},
		Unlocked:    func(u *models.User) bool { return len(u.CompletedLessonIDs) >= 1 },
	},
	{
		Achievement: models.Achievement{ID: "five-lessons", Title: "Quick Learner", Icon: "flash"},
		Unlocked:    func(u *models.User) bool { return len(u.CompletedLessonIDs) >= 5 },
	},
	{
		Achievement: models.Achievement{ID: "xp-100", Title: "Rising Star", Icon: "star"},
		Unlocked:    func(u *models.User) bool { return u.XP >= 100 },
	},
	{
		Achievement: models.Achievement{ID: "xp-500", Title: "Scholar", Icon: "school"},
		Unlocked:    func(u *models.User) bool { return u.XP >= 500 },
	},
	{
		Achievement: models.Achievement{ID: "streak-3", Title: "On Fire", Icon: "flame"},
		Unlocked:    func(u *models.User) bool { return u.Streak >= 3 },
	},
	{
		Achievement: models.Achievement{ID: "streak-7", Title: "Week Warrior", Icon: "trophy"},
		Unlocked:    func(u *models.User) bool { return u.Streak >= 7 },
	},
}

// EvaluateAchievements returns the achievements u has earned but does not
// hold yet.
func EvaluateAchievements(u *models.User, rules []AchievementRule) []models.Achievement {
	var earned []models.Achievement
	for _, r := range rules {
		if u.HasAchievement(r.Achievement.ID) || !r.Unlocked(u) {
			continue
		}
		a := r.Achievement
		a.Unlocked = true
		earned = append(earned, a)
	}
	return earned
}

// AwardAchievements adds every newly earned default achievement to the user
// and returns them.
func (s *Store) AwardAchievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	earned := EvaluateAchievements(u, DefaultAchievementRules)
	for _, a := range earned {
		if err := s.AddAchievement(ctx, userID, a); err != nil {
			return nil, err
		}
	}
	return earned, nil
}
