// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"unischool/site-api/db"
	"unischool/site-api/internal/service"
	"unischool/site-api/pkg/middleware"
	"unischool/site-api/pkg/security"
	"unischool/site-api/storage"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB      *gorm.DB
	Router  *gin.Engine
	Hash    *security.BcryptHash
	Mailer  *service.Mailer
	Avatars *service.AvatarStore
}

func NewRouter() (*API, error) {
	a := &API{
		Hash: security.New(),
	}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = db

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
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
	a.Router.MaxMultipartMemory = 5 << 20

	if viper.GetBool("mail.enabled") {
		a.Mailer = service.NewMailer()
	}

	if viper.GetBool("storage.avatars.enabled") {
		s3, err := storage.New()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize avatar storage, %w", err)
		}

		a.Avatars = service.NewAvatarStore(s3)
	}

	a.registerRoutes()

	service.TokenCleanup(time.Hour, db)
	service.SessionCleanup(time.Hour, db)

	return a, nil
}

// registerRoutes attaches every endpoint to the engine. Kept separate
// from NewRouter so tests can assemble an API around their own database.
func (a *API) registerRoutes() {
	session := middleware.NewSessionMiddleware(a.DB)
	admin := middleware.RequireAdmin()

	limiter := func(c *gin.Context) { c.Next() }
	if rps := viper.GetInt("ratelimit.requests_per_second"); rps > 0 {
		limiter = middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RequestsPerSecond: rps,
			Burst:             viper.GetInt("ratelimit.burst"),
		})
	}

	main := a.Router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	auth := main.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/login			-> Verifies credentials and sets the session cookie
		auth.POST("/login", limiter, a.AuthLogin)

		// GET /api/auth/logout			-> Destroys the session and redirects to the login page
		auth.GET("/logout", a.AuthLogoutRedirect)

		// POST /api/auth/logout		-> Destroys the session (or all of them)
		auth.POST("/logout", a.AuthLogout)

		// POST /api/auth/register/token	-> Redeems a registration confirmation token
		auth.POST("/register/token", limiter, a.AuthRegisterToken)

		// POST /api/auth/reset/password	-> Redeems a password reset token
		auth.POST("/reset/password", limiter, a.AuthResetPassword)
	}

	users := main.Group("/users")
	{
		// GET /api/users		-> Public member directory (no emails)
		users.GET("", cacheFor(30), a.UsersList)

		// GET /api/users/:id		-> Public member page data
		users.GET("/:id", a.UserFetch)
	}

	blogs := main.Group("/blogs")
	{
		// GET /api/blogs		-> Published posts, newest first
		blogs.GET("", cacheFor(30), a.BlogsList)

		// GET /api/blogs/:slug 	-> A single post
		blogs.GET("/:slug", a.BlogFetch)

		// POST /api/blogs		-> Creates a post
		blogs.POST("", session, middleware.BodySizeLimiter(1<<20), a.BlogCreate)

		// PUT /api/blogs/:slug		-> Updates a post
		blogs.PUT("/:slug", session, middleware.BodySizeLimiter(1<<20), a.BlogUpdate)

		// DELETE /api/blogs/:slug	-> Deletes a post owned by the caller
		blogs.DELETE("/:slug", session, a.BlogDelete)
	}

	me := main.Group("/me", session)
	{
		// GET /api/me			-> Current user with sessions and login history
		me.GET("", a.MeFetch)

		// DELETE /api/me		-> Deletes the caller's account
		me.DELETE("", a.MeDelete)

		// GET /api/me/profile		-> Current user with profile
		me.GET("/profile", a.MeProfileFetch)

		// POST /api/me/profile		-> Updates name and profile fields
		me.POST("/profile", middleware.BodySizeLimiter(1<<20), a.MeProfileUpdate)

		// POST /api/me/avatar		-> Uploads a profile picture
		me.POST("/avatar", middleware.BodySizeLimiter(5<<20), a.MeAvatarUpload)
	}

	adminUsers := main.Group("/admin/users", session, admin)
	{
		// GET /api/admin/users			-> Full user list
		adminUsers.GET("", a.AdminUsersList)

		// POST /api/admin/users		-> Creates a user and mails a registration token
		adminUsers.POST("", middleware.BodySizeLimiter(1<<20), a.AdminUserCreate)

		// POST /api/admin/users/send		-> Mails every member at once (Bcc)
		adminUsers.POST("/send", middleware.BodySizeLimiter(1<<20), a.AdminUsersBroadcast)

		// GET /api/admin/users/:id		-> A single user with profile
		adminUsers.GET("/:id", a.AdminUserFetch)

		// PATCH /api/admin/users/:id		-> Updates name/email/role/team
		adminUsers.PATCH("/:id", middleware.BodySizeLimiter(1<<20), a.AdminUserPatch)

		// DELETE /api/admin/users/:id		-> Deletes a user and their data
		adminUsers.DELETE("/:id", a.AdminUserDelete)

		// POST /api/admin/users/:id/profile	-> Edits a user's profile
		adminUsers.POST("/:id/profile", middleware.BodySizeLimiter(1<<20), a.AdminUserProfileUpsert)

		// POST /api/admin/users/:id/avatar	-> Uploads a profile picture for a user
		adminUsers.POST("/:id/avatar", middleware.BodySizeLimiter(5<<20), a.AdminUserAvatarUpload)

		// GET /api/admin/users/:id/history	-> Login history of a user
		adminUsers.GET("/:id/history", a.AdminUserHistory)

		// POST /api/admin/users/:id/send	-> Sends a custom email
		adminUsers.POST("/:id/send", middleware.BodySizeLimiter(1<<20), a.AdminUserSendMail)

		// POST /api/admin/users/:id/send/reset	 -> Issues and mails a password reset token
		adminUsers.POST("/:id/send/reset", a.AdminUserSendReset)

		// POST /api/admin/users/:id/send/verify -> Re-sends the registration confirmation
		adminUsers.POST("/:id/send/verify", a.AdminUserSendVerify)
	}
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
