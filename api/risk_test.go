package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"

	"github.com/vitalis-inc/vitalis-api/schema"
	"github.com/vitalis-inc/vitalis-api/store"
)

// testCore serves a single account for handler tests. Calls outside the
// overridden set panic through the embedded nil interface.
type testCore struct {
	store.VitalisCore
	account *schema.UserProfile
}

func (c *testCore) GetAccount(id string) (*schema.UserProfile, error) {
	if c.account == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return c.account, nil
}

type testMongo struct {
	store.MongoStore
	logs []schema.DailyLogEntry
}

func (m *testMongo) ListLogs(userID string) ([]schema.DailyLogEntry, error) {
	return m.logs, nil
}

func stressedWeek() []schema.DailyLogEntry {
	entries := make([]schema.DailyLogEntry, 0, 7)
	for i, stress := range []int{5, 5, 4, 5, 5, 4, 5} {
		entries = append(entries, schema.DailyLogEntry{
			ID:           string(rune('a' + i)),
			UserID:       "1",
			Mood:         3,
			Stress:       stress,
			SleepQuality: 3,
			Pain:         1,
			Energy:       3,
		})
	}
	return entries
}

func TestGetRisks(t *testing.T) {
	s := Server{
		store: &testCore{account: &schema.UserProfile{
			ID:   "1",
			Name: "Demo User",
		}},
		mongoStore: &testMongo{logs: stressedWeek()},
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(s.recognizeAccountMiddleware())
	router.GET("/", s.getRisks)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp struct {
		Risks []schema.RiskAssessment `json:"risks"`
	}
	err := json.Unmarshal([]byte(w.Body.String()), &jResp)

	assert.Nil(t, err, "wrong json unmarshal")
	assert.Len(t, jResp.Risks, 3)
	assert.Equal(t, "Chronic Stress Risk", jResp.Risks[0].Title)
	assert.Equal(t, 94, jResp.Risks[0].Score, "wrong stress score")
	assert.Equal(t, schema.RiskSevere, jResp.Risks[0].Level)
}

func TestGetRisksEmptyWindow(t *testing.T) {
	s := Server{
		store: &testCore{account: &schema.UserProfile{
			ID:   "1",
			Name: "Demo User",
		}},
		mongoStore: &testMongo{logs: []schema.DailyLogEntry{}},
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(s.recognizeAccountMiddleware())
	router.GET("/", s.getRisks)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp struct {
		Risks []schema.RiskAssessment `json:"risks"`
	}
	err := json.Unmarshal([]byte(w.Body.String()), &jResp)

	assert.Nil(t, err, "wrong json unmarshal")
	assert.Len(t, jResp.Risks, 0, "no assessments without logs")
}

func TestUnknownAccountRejected(t *testing.T) {
	s := Server{
		store:      &testCore{},
		mongoStore: &testMongo{},
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(s.recognizeAccountMiddleware())
	router.GET("/", s.getRisks)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code, "wrong status code")
}
