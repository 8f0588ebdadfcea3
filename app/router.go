// Package app wires the HTTP surface: middleware chain, route groups and
// the dependency container passed to every handler
package app

import (
	"fmt"
	"strings"
	"time"

	authapp "ishan/rms-api/app/auth"
	"ishan/rms-api/app/manager"
	"ishan/rms-api/app/request"
	"ishan/rms-api/app/root"
	"ishan/rms-api/aws"
	"ishan/rms-api/db"
	"ishan/rms-api/internal"
	"ishan/rms-api/internal/auth"
	"ishan/rms-api/internal/model"
	"ishan/rms-api/internal/service"
	"ishan/rms-api/internal/store"
	"ishan/rms-api/internal/workflow"
	"ishan/rms-api/pkg/middleware"
	"ishan/rms-api/pkg/security"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewRouter() (*gin.Engine, error) {
	d := &internal.Deps{}

	gdb, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = gdb

	d.Users = store.NewUserStore(gdb)
	d.Requests = store.NewRequestStore(gdb)
	d.Workflow = workflow.NewEngine(d.Requests)

	var mailer service.Mailer = service.NopMailer{}
	if viper.GetBool("mail.enabled") {
		mailer = service.NewSMTPMailer()
	}
	d.Auth = auth.NewService(d.Users, security.NewArgon(), mailer)

	switch viper.GetString("storage.type") {
	case "s3":
		s3, err := aws.NewS3()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}
		d.Receipts = service.NewS3Receipts(s3)
	default:
		local, err := service.NewLocalReceipts()
		if err != nil {
			return nil, err
		}
		d.Receipts = local
	}

	makeLogger()
	service.TokenCleanup(time.Hour, d.Users)

	router := gin.New()

	origins := strings.Split(viper.GetString("host.cors"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	rateLimit := viper.GetInt("security.rate_limit")
	maxUploadSize := viper.GetInt64("storage.max_upload_size")

	jwt := middleware.NewJWTMiddleware()
	managerOnly := middleware.RequireRole(model.RoleManager)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Minute,
	})

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)
	}

	a := m.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/register		-> Registers a new account
		a.POST("/register", func(c *gin.Context) { authapp.Register(c, d) })

		// GET /api/auth/verify-email		-> Consumes an email verification token
		a.GET("/verify-email", func(c *gin.Context) { authapp.VerifyEmail(c, d) })

		// POST /api/auth/login			-> Logs a user in and returns a bearer token
		a.POST("/login", func(c *gin.Context) { authapp.Login(c, d) })

		// POST /api/auth/forgot-password	-> Requests a password reset link
		a.POST("/forgot-password", func(c *gin.Context) { authapp.ForgotPassword(c, d) })

		// POST /api/auth/reset-password	-> Consumes a reset token
		a.POST("/reset-password", func(c *gin.Context) { authapp.ResetPassword(c, d) })
	}

	r := m.Group("/requests", jwt)
	{
		// POST /api/requests			-> Creates a new draft request
		r.POST("", func(c *gin.Context) { request.Create(c, d) })

		// GET /api/requests			-> Lists the caller's own requests
		r.GET("", func(c *gin.Context) { request.List(c, d) })

		// GET /api/requests/summary		-> Counts the caller's requests per status
		r.GET("/summary", func(c *gin.Context) { request.Summary(c, d) })

		// GET /api/requests/:id		-> Returns one request (owner or manager)
		r.GET("/:id", func(c *gin.Context) { request.Fetch(c, d) })

		// PUT /api/requests/:id		-> Edits a draft
		r.PUT("/:id", func(c *gin.Context) { request.Edit(c, d) })

		// POST /api/requests/:id/submit	-> DRAFT -> SUBMITTED
		r.POST("/:id/submit", func(c *gin.Context) { request.Submit(c, d) })

		// POST /api/requests/:id/final-approve	-> MANAGER_APPROVED -> FINAL_APPROVED
		r.POST("/:id/final-approve", func(c *gin.Context) { request.FinalApprove(c, d) })

		// POST /api/requests/:id/attachment	-> Uploads a receipt for a draft
		r.POST("/:id/attachment", middleware.BodySizeLimiter(maxUploadSize), func(c *gin.Context) { request.Attachment(c, d) })
	}

	mg := m.Group("/manager", jwt, managerOnly)
	{
		// GET /api/manager/requests		-> Lists SUBMITTED requests
		mg.GET("/requests", func(c *gin.Context) { manager.List(c, d) })

		// POST /api/manager/requests/:id/approve -> SUBMITTED -> MANAGER_APPROVED
		mg.POST("/requests/:id/approve", func(c *gin.Context) { manager.Approve(c, d) })

		// POST /api/manager/requests/:id/reject  -> SUBMITTED -> REJECTED
		mg.POST("/requests/:id/reject", func(c *gin.Context) { manager.Reject(c, d) })
	}

	return router, nil
}

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	var lvl zapcore.Level
	if err := lvl.Set(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
