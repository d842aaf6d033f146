package models

// UserProfile is the derived learning state for a user.
// It is recomputed from the user id on demand, never persisted.
type UserProfile struct {
	UserID           string        `json:"userId"`
	Level            int           `json:"level"`
	CurrentXP        int           `json:"currentXP"`
	TotalXP          int           `json:"totalXP"`
	Achievements     []Achievement `json:"achievements"`
	CompletedModules []string      `json:"completedModules"`
	StreakDays       int           `json:"streakDays"`
	TotalStudyTime   int           `json:"totalStudyTime"`
}

// LearningModule is one entry of the static module catalog
type LearningModule struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	XP          int    `json:"xp"`
	Difficulty  string `json:"difficulty"` // beginner, intermediate, advanced
	Category    string `json:"category"`
}

// Assessment is one entry of the static assessment catalog
type Assessment struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Questions   int    `json:"questions"`
	TimeLimit   int    `json:"timeLimit"` // minutes
	Difficulty  string `json:"difficulty"`
	XPReward    int    `json:"xpReward"`
}

// Achievement is an unlocked badge on a profile
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// LeaderboardEntry is one row of the mock leaderboard
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	XP     int    `json:"xp"`
	Level  int    `json:"level"`
	Streak int    `json:"streak"`
}

// ModuleContent bundles a catalog module with per-request dynamic
// material and the caller's derived progress
type ModuleContent struct {
	Module       *LearningModule        `json:"module"`
	Dynamic      map[string]interface{} `json:"dynamic"`
	UserProgress *UserProfile           `json:"userProgress"`
}
