package api

import (
	"context"
	"crypto/rsa"
	"net/http"
	"sync"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vitalis-inc/vitalis-api/chat"
	"github.com/vitalis-inc/vitalis-api/external/analysis"
	"github.com/vitalis-inc/vitalis-api/external/assistant"
	"github.com/vitalis-inc/vitalis-api/external/places"
	"github.com/vitalis-inc/vitalis-api/logmodule"
	"github.com/vitalis-inc/vitalis-api/schema"
	"github.com/vitalis-inc/vitalis-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store      store.VitalisCore
	mongoStore store.MongoStore

	// JWT private key
	jwtPrivateKey *rsa.PrivateKey

	// External services
	completer assistant.Completer
	analyzer  analysis.Analyzer
	places    places.Places

	// Per-user conversation managers
	chatMu       sync.Mutex
	chatManagers map[string]*chat.Manager
}

// NewServer new instance of server
func NewServer(
	core store.VitalisCore,
	mongoStore store.MongoStore,
	jwtKey *rsa.PrivateKey,
	completer assistant.Completer,
	analyzer analysis.Analyzer,
	placesClient places.Places) *Server {
	return &Server{
		store:         core,
		mongoStore:    mongoStore,
		jwtPrivateKey: jwtKey,
		completer:     completer,
		analyzer:      analyzer,
		places:        placesClient,
		chatManagers:  map[string]*chat.Manager{},
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))
	apiRoute.GET("/information", s.information)

	apiRoute.POST("/auth", s.requestJWT)

	// api route other than `/auth` will apply the following middleware
	apiRoute.Use(s.authMiddleware())

	accountRoute := apiRoute.Group("/accounts")
	{
		accountRoute.POST("", s.accountRegister)
	}

	accountRoute.Use(s.recognizeAccountMiddleware())
	{
		accountRoute.GET("/me", s.accountDetail)
		accountRoute.PATCH("/me", s.accountUpdateProfile)
		accountRoute.DELETE("/me", s.accountDelete)
	}

	recordRoute := apiRoute.Group("/")
	recordRoute.Use(s.recognizeAccountMiddleware())
	{
		recordRoute.POST("/reports/analyze", s.analyzeReport)
		recordRoute.GET("/reports", s.listReports)
		recordRoute.DELETE("/reports/:reportID", s.deleteReport)
		recordRoute.DELETE("/reports", s.deleteAllReports)

		recordRoute.POST("/symptom-checks", s.checkSymptoms)

		recordRoute.POST("/daily-logs", s.appendDailyLog)
		recordRoute.GET("/daily-logs", s.listDailyLogs)

		recordRoute.PUT("/emergency-profile", s.upsertEmergencyProfile)
		recordRoute.GET("/emergency-profile", s.getEmergencyProfile)

		recordRoute.GET("/risks", s.getRisks)
		recordRoute.GET("/insights", s.getInsights)
		recordRoute.GET("/timeline", s.getTimeline)
		recordRoute.GET("/summary/monthly", s.getMonthlySummary)

		recordRoute.POST("/chat/messages", s.chatSend)
		recordRoute.GET("/chat/messages", s.chatHistory)
		recordRoute.DELETE("/chat", s.chatReset)

		recordRoute.GET("/doctors", s.findDoctors)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// chatManager returns the conversation manager of an account, creating
// and hydrating one on first use. The manager owns the per-owner
// mutual exclusion around the conversation.
func (s *Server) chatManager(account *schema.UserProfile, lang string) (*chat.Manager, error) {
	s.chatMu.Lock()
	defer s.chatMu.Unlock()

	if m, ok := s.chatManagers[account.ID]; ok {
		if lang != "" {
			m.SetLanguage(lang)
		}
		return m, nil
	}

	m := chat.NewManager(s.mongoStore, s.completer, lang)
	if err := m.SetUser(account); err != nil {
		return nil, err
	}
	s.chatManagers[account.ID] = m
	return m, nil
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping both stores
	if err := s.store.Ping(); shouldInterupt(err, c) {
		return
	}
	if err := s.mongoStore.Ping(); shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"system_version": "Vitalis 0.1",
		},
	})
}

// requestLanguage resolves the active display language of a request.
// An explicit lang query wins over the Accept-Language header.
func requestLanguage(c *gin.Context) string {
	if lang := c.Query("lang"); lang != "" {
		return lang
	}
	return c.GetHeader("Accept-Language")
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	c.AbortWithStatusJSON(code, obj)
}
