package learning

import (
	"terra-farm/pkg/models"
)

// DeriveProfile computes the learning profile for a user id. The profile
// is a pure function of the id: there is no stored user state anywhere,
// so the same id always maps to the same level, XP and streak. Callers
// that need freshness semantics put the result behind the TTL cache.
func DeriveProfile(userID string) *models.UserProfile {
	h := hashUserID(userID)

	level := h%5 + 1

	achievements := make([]models.Achievement, 0, 3)
	for _, a := range achievementCatalog[:h%3+1] {
		achievements = append(achievements, a)
	}

	completed := make([]string, 0, 3)
	completed = append(completed, completedModuleCatalog[:h%3]...)

	return &models.UserProfile{
		UserID:           userID,
		Level:            level,
		CurrentXP:        h%1000 + 500,
		TotalXP:          level * 1000,
		Achievements:     achievements,
		CompletedModules: completed,
		StreakDays:       h%30 + 1,
		TotalStudyTime:   h%500 + 100,
	}
}

// hashUserID folds the id's code points into a polynomial hash.
// Not a security hash; it only needs to be deterministic and spread
// nearby ids across the derived ranges.
func hashUserID(userID string) int {
	acc := 0
	for _, r := range userID {
		acc = acc*31 + int(r)
	}
	if acc < 0 {
		acc = -acc
	}
	return acc
}
