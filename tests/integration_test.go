package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"terra-farm/internal/cache"
	"terra-farm/internal/handlers"
	"terra-farm/internal/imagery"
	"terra-farm/internal/learning"
)

func setupTestServer(t *testing.T) (*gin.Engine, cache.Cache) {
	logger := zaptest.NewLogger(t)

	cacheInstance := cache.NewMemoryCache(cache.DefaultCacheConfig(), logger, nil)
	t.Cleanup(func() { cacheInstance.Close() })

	gin.SetMode(gin.TestMode)
	router := gin.New()

	service := learning.NewService(cacheInstance, logger, 30*time.Minute, rand.New(rand.NewSource(1)))
	learningHandler := handlers.NewLearningHandler(service, logger)
	imageryHandler := handlers.NewImageryHandler(imagery.NewGenerator(logger), logger)
	healthHandler := handlers.NewHealthHandler(cacheInstance, logger)

	router.GET("/health", healthHandler.Health)
	router.GET("/learning-hub", learningHandler.HandleGet)
	router.POST("/learning-hub", learningHandler.HandlePost)
	router.GET("/imagery", imageryHandler.HandleGet)

	return router, cacheInstance
}

func getJSON(t *testing.T, router *gin.Engine, url string) (int, map[string]interface{}) {
	req := httptest.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	return w.Code, response
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload map[string]interface{}) (int, map[string]interface{}) {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	return w.Code, response
}

func TestAPI_ModulesAll(t *testing.T) {
	router, _ := setupTestServer(t)

	code, response := getJSON(t, router, "/learning-hub?action=modules&level=all&userId=guest")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, response["success"])

	data := response["data"].(map[string]interface{})
	modules := data["modules"].([]interface{})
	assert.Len(t, modules, 5)
	assert.Equal(t, float64(5), data["totalModules"])
	assert.NotEmpty(t, data["categories"])

	// First request fills, second hits
	cacheInfo := response["cache"].(map[string]interface{})
	assert.Equal(t, false, cacheInfo["hit"])

	_, response = getJSON(t, router, "/learning-hub?action=modules&level=all&userId=guest")
	cacheInfo = response["cache"].(map[string]interface{})
	assert.Equal(t, true, cacheInfo["hit"])
}

func TestAPI_ModulesFiltered(t *testing.T) {
	router, _ := setupTestServer(t)

	code, response := getJSON(t, router, "/learning-hub?action=modules&level=intermediate&userId=guest")
	assert.Equal(t, http.StatusOK, code)

	data := response["data"].(map[string]interface{})
	modules := data["modules"].([]interface{})
	require.NotEmpty(t, modules)
	for _, raw := range modules {
		m := raw.(map[string]interface{})
		assert.Equal(t, "intermediate", m["difficulty"])
	}
}

func TestAPI_Progress(t *testing.T) {
	router, _ := setupTestServer(t)

	code, response := getJSON(t, router, "/learning-hub?action=progress&userId=guest")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, response["success"])

	expected := learning.DeriveProfile("guest")
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "guest", data["userId"])
	assert.Equal(t, float64(expected.Level), data["level"])
	assert.Equal(t, float64(expected.CurrentXP), data["currentXP"])
	assert.Equal(t, float64(expected.StreakDays), data["streakDays"])
}

func TestAPI_ModuleContent(t *testing.T) {
	router, _ := setupTestServer(t)

	code, response := getJSON(t, router, "/learning-hub?action=module-content&moduleId=nasa-data-intro&userId=guest")
	assert.Equal(t, http.StatusOK, code)

	data := response["data"].(map[string]interface{})
	module := data["module"].(map[string]interface{})
	assert.Equal(t, "nasa-data-intro", module["id"])
	assert.NotNil(t, data["dynamic"])
	assert.NotNil(t, data["userProgress"])
}

func TestAPI_ModuleContentNotFound(t *testing.T) {
	router, _ := setupTestServer(t)

	code, response := getJSON(t, router, "/learning-hub?action=module-content&moduleId=no-such&userId=guest")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, response["error"], "not found")
}

func TestAPI_ModuleContentMissingID(t *testing.T) {
	router, _ := setupTestServer(t)

	code, response := getJSON(t, router, "/learning-hub?action=module-content&userId=guest")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "moduleId required", response["error"])
}

func TestAPI_Assessments(t *testing.T) {
	router, _ := setupTestServer(t)

	code, response := getJSON(t, router, "/learning-hub?action=assessments&userId=guest")
	assert.Equal(t, http.StatusOK, code)

	data := response["data"].(map[string]interface{})
	assessments := data["assessments"].([]interface{})
	assert.Len(t, assessments, 3)
	assert.Contains(t, data, "userCompletedAssessments")
}

func TestAPI_Leaderboard(t *testing.T) {
	router, _ := setupTestServer(t)

	code, response := getJSON(t, router, "/learning-hub?action=leaderboard&userId=guest")
	assert.Equal(t, http.StatusOK, code)

	expected := learning.DeriveProfile("guest")
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["userRank"])
	assert.Equal(t, float64(1247), data["totalUsers"])

	var you map[string]interface{}
	for _, raw := range data["leaderboard"].([]interface{}) {
		entry := raw.(map[string]interface{})
		if entry["name"] == "You" {
			you = entry
		}
	}
	require.NotNil(t, you, "leaderboard must contain the caller")
	assert.Equal(t, float64(3), you["rank"])
	assert.Equal(t, float64(expected.CurrentXP), you["xp"])
}

func TestAPI_InvalidAction(t *testing.T) {
	router, _ := setupTestServer(t)

	code, response := getJSON(t, router, "/learning-hub?action=teleport&userId=guest")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid action", response["error"])

	code, response = postJSON(t, router, "/learning-hub?userId=guest", map[string]interface{}{
		"action": "teleport",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid action", response["error"])
}

func TestAPI_StartModule(t *testing.T) {
	router, cacheInstance := setupTestServer(t)

	// Prime the progress cache
	code, _ := getJSON(t, router, "/learning-hub?action=progress&userId=guest")
	require.Equal(t, http.StatusOK, code)

	exists, err := cacheInstance.Exists(context.Background(), "learning:progress:guest")
	require.NoError(t, err)
	require.True(t, exists)

	code, response := postJSON(t, router, "/learning-hub?userId=guest", map[string]interface{}{
		"action":   "start-module",
		"moduleId": "nasa-data-intro",
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, response["success"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(50), data["xpAwarded"])

	exists, err = cacheInstance.Exists(context.Background(), "learning:progress:guest")
	require.NoError(t, err)
	assert.False(t, exists, "start-module must invalidate cached progress")
}

func TestAPI_CompleteModule(t *testing.T) {
	router, _ := setupTestServer(t)

	code, response := postJSON(t, router, "/learning-hub?userId=guest", map[string]interface{}{
		"action":   "complete-module",
		"moduleId": "ndvi-vegetation",
	})
	assert.Equal(t, http.StatusOK, code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(150), data["xpAwarded"])
}

func TestAPI_SubmitAssessment(t *testing.T) {
	router, _ := setupTestServer(t)

	for i := 0; i < 20; i++ {
		code, response := postJSON(t, router, "/learning-hub?userId=guest", map[string]interface{}{
			"action":       "submit-assessment",
			"assessmentId": "satellite-basics",
			"answers":      []string{"a", "b", "c"},
		})
		assert.Equal(t, http.StatusOK, code)

		data := response["data"].(map[string]interface{})
		score := data["score"].(float64)
		assert.GreaterOrEqual(t, score, float64(60))
		assert.LessOrEqual(t, score, float64(100))
		assert.Equal(t, score >= 70, data["passed"])

		if data["passed"].(bool) {
			assert.Equal(t, float64(200), data["xpEarned"])
		} else {
			assert.Equal(t, float64(100), data["xpEarned"])
		}
	}
}

func TestAPI_SubmitAssessmentMissingParams(t *testing.T) {
	router, _ := setupTestServer(t)

	code, response := postJSON(t, router, "/learning-hub?userId=guest", map[string]interface{}{
		"action": "submit-assessment",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "assessmentId required", response["error"])

	code, response = postJSON(t, router, "/learning-hub?userId=guest", map[string]interface{}{
		"action":       "submit-assessment",
		"assessmentId": "satellite-basics",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "answers required", response["error"])
}

func TestAPI_ImagerySVG(t *testing.T) {
	router, _ := setupTestServer(t)

	req := httptest.NewRequest("GET", "/imagery?type=vegetation", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")
}

func TestAPI_ImageryPNG(t *testing.T) {
	router, _ := setupTestServer(t)

	req := httptest.NewRequest("GET", "/imagery?type=temperature&format=png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestAPI_ImageryUnknownType(t *testing.T) {
	router, _ := setupTestServer(t)

	req := httptest.NewRequest("GET", "/imagery?type=xray", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_Health(t *testing.T) {
	router, _ := setupTestServer(t)

	code, response := getJSON(t, router, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", response["status"])
}
