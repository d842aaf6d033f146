package learning

import (
	"terra-farm/pkg/models"
)

// Difficulty levels accepted by the catalog filters
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyAll          = "all"
)

// moduleCatalog is the seeded learning module list. Immutable at runtime.
var moduleCatalog = []models.LearningModule{
	{
		ID:          "nasa-data-intro",
		Title:       "Introduction to NASA Earth Data",
		Description: "What satellites measure, how often, and why it matters for your fields.",
		Duration:    "30 min",
		XP:          100,
		Difficulty:  DifficultyBeginner,
		Category:    "fundamentals",
	},
	{
		ID:          "ndvi-vegetation",
		Title:       "Reading Vegetation Health with NDVI",
		Description: "Interpret vegetation index maps to spot stressed crops before they fail.",
		Duration:    "45 min",
		XP:          150,
		Difficulty:  DifficultyIntermediate,
		Category:    "vegetation",
	},
	{
		ID:          "smap-soil-moisture",
		Title:       "Soil Moisture from SMAP",
		Description: "Use soil moisture retrievals to time irrigation and avoid waterlogging.",
		Duration:    "40 min",
		XP:          150,
		Difficulty:  DifficultyIntermediate,
		Category:    "soil",
	},
	{
		ID:          "gpm-precipitation",
		Title:       "Tracking Rainfall with GPM",
		Description: "Follow precipitation estimates and plan planting around wet spells.",
		Duration:    "35 min",
		XP:          100,
		Difficulty:  DifficultyBeginner,
		Category:    "weather",
	},
	{
		ID:          "modis-crop-planning",
		Title:       "Seasonal Crop Planning with MODIS",
		Description: "Combine multi-year MODIS time series into a planting calendar.",
		Duration:    "60 min",
		XP:          250,
		Difficulty:  DifficultyAdvanced,
		Category:    "planning",
	},
}

// assessmentCatalog is the seeded assessment list
var assessmentCatalog = []models.Assessment{
	{
		ID:          "satellite-basics",
		Title:       "Satellite Data Basics",
		Description: "Core concepts: orbits, revisit times, resolution trade-offs.",
		Questions:   10,
		TimeLimit:   15,
		Difficulty:  DifficultyBeginner,
		XPReward:    200,
	},
	{
		ID:          "vegetation-analysis",
		Title:       "Vegetation Analysis",
		Description: "NDVI interpretation across crop types and seasons.",
		Questions:   15,
		TimeLimit:   20,
		Difficulty:  DifficultyIntermediate,
		XPReward:    200,
	},
	{
		ID:          "farm-decision-making",
		Title:       "Data-Driven Farm Decisions",
		Description: "Irrigation, planting and harvest calls from combined data products.",
		Questions:   20,
		TimeLimit:   30,
		Difficulty:  DifficultyAdvanced,
		XPReward:    200,
	},
}

// achievementCatalog feeds DeriveProfile; entries are awarded by hash index
var achievementCatalog = []models.Achievement{
	{
		ID:          "first-harvest",
		Title:       "First Harvest",
		Description: "Completed your first learning module.",
		Date:        "2025-03-14",
	},
	{
		ID:          "data-explorer",
		Title:       "Data Explorer",
		Description: "Viewed all four satellite data layers.",
		Date:        "2025-04-02",
	},
	{
		ID:          "week-streak",
		Title:       "Week Streak",
		Description: "Studied seven days in a row.",
		Date:        "2025-04-21",
	},
}

// completedModuleCatalog feeds DeriveProfile's completed module selection
var completedModuleCatalog = []string{
	"nasa-data-intro",
	"ndvi-vegetation",
	"smap-soil-moisture",
}

// Modules returns the full seeded module catalog
func Modules() []models.LearningModule {
	return moduleCatalog
}

// FilterModules returns catalog entries matching the difficulty level.
// "all" returns everything; an unrecognized level yields an empty set.
func FilterModules(level string) []models.LearningModule {
	if level == "" || level == DifficultyAll {
		return moduleCatalog
	}

	filtered := make([]models.LearningModule, 0, len(moduleCatalog))
	for _, m := range moduleCatalog {
		if m.Difficulty == level {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// ModuleByID looks a module up in the catalog
func ModuleByID(id string) (*models.LearningModule, bool) {
	for i := range moduleCatalog {
		if moduleCatalog[i].ID == id {
			return &moduleCatalog[i], true
		}
	}
	return nil, false
}

// Assessments returns the seeded assessment catalog
func Assessments() []models.Assessment {
	return assessmentCatalog
}

// AssessmentByID looks an assessment up in the catalog
func AssessmentByID(id string) (*models.Assessment, bool) {
	for i := range assessmentCatalog {
		if assessmentCatalog[i].ID == id {
			return &assessmentCatalog[i], true
		}
	}
	return nil, false
}

// Categories returns the distinct module categories, catalog order
func Categories() []string {
	seen := make(map[string]bool, len(moduleCatalog))
	categories := make([]string, 0, len(moduleCatalog))
	for _, m := range moduleCatalog {
		if !seen[m.Category] {
			seen[m.Category] = true
			categories = append(categories, m.Category)
		}
	}
	return categories
}
