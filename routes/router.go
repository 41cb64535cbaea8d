package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hitalent/qanda/config"
	"github.com/hitalent/qanda/controllers"
	"github.com/hitalent/qanda/services"
	"github.com/hitalent/qanda/store"
	"github.com/hitalent/qanda/utils"
)

// SetupRouter wires routes, middlewares and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	if gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg); err == nil {
		r.Use(utils.Ginzap(gl))
		r.Use(utils.RecoveryWithZap(gl))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length", controllers.TotalCountHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	RegisterAPI(r, services.NewQAService(store.NewGormStore(db)))

	return r
}

// RegisterAPI mounts the question/answer API and the health route on the engine.
func RegisterAPI(r *gin.Engine, svc *services.QAService) {
	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	questionController := controllers.NewQuestionController(svc)
	answerController := controllers.NewAnswerController(svc)

	questions := r.Group("/questions")
	questions.POST("/", questionController.CreateQuestion)
	questions.GET("/", questionController.ListQuestions)
	questions.GET("/:id", questionController.GetQuestion)
	questions.DELETE("/:id", questionController.DeleteQuestion)
	questions.POST("/:id/answers/", questionController.CreateAnswer)

	answers := r.Group("/answers")
	answers.GET("/", answerController.ListAnswers)
	answers.GET("/:id", answerController.GetAnswer)
	answers.DELETE("/:id", answerController.DeleteAnswer)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})
}
