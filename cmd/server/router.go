package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/itc-club/club-applications/internal/admin"
	"github.com/itc-club/club-applications/internal/auth"
	"github.com/itc-club/club-applications/internal/errors"
	"github.com/itc-club/club-applications/internal/guard"
	"github.com/itc-club/club-applications/internal/monitoring"
	"github.com/itc-club/club-applications/internal/ratelimit"
	"github.com/itc-club/club-applications/internal/review"
	"github.com/itc-club/club-applications/internal/security"
	"github.com/itc-club/club-applications/internal/types"
)

type routerDeps struct {
	submissions *guard.Service
	dashboard   *admin.Service
	reviews     *review.Service
	auth        *auth.Service
	limiter     *ratelimit.Limiter
	metrics     *monitoring.Metrics
	logger      *monitoring.Logger
	origins     []string
}

func newRouter(deps routerDeps) *gin.Engine {
	r := gin.New()

	sec := security.NewMiddleware(security.DefaultConfig())

	r.Use(monitoring.MonitoringMiddleware(deps.metrics, deps.logger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())
	r.Use(sec.Headers, sec.RequestTimeout, sec.ValidateContentType, sec.LimitBodySize)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"metrics":   deps.metrics.GetStats(),
		})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	api.POST("/applications", deps.limiter.Middleware(), func(c *gin.Context) {
		var candidate types.ApplicantResponse
		if err := c.ShouldBindJSON(&candidate); err != nil {
			appErr := errors.NewValidationError("invalid request body")
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		rec, err := deps.submissions.Submit(c.Request.Context(), &candidate)
		if err != nil {
			appErr := errors.ToAppError(err)
			deps.metrics.RecordSubmissionRejected(string(appErr.Reason))
			deps.logger.SubmissionLogger(candidate.Email, false, string(appErr.Reason), 0)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		deps.metrics.RecordSubmissionAccepted()
		deps.logger.SubmissionLogger(rec.Response.Email, true, "", rec.TotalScore)
		c.JSON(http.StatusCreated, rec)
	})

	api.POST("/admin/login", func(c *gin.Context) {
		var req struct {
			AdminName string `json:"admin_name"`
			Password  string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := errors.NewValidationError("invalid request body")
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		token, err := deps.auth.Login(req.AdminName, req.Password)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "admin_name": req.AdminName})
	})

	protected := api.Group("", deps.auth.Middleware())

	protected.GET("/applications", func(c *gin.Context) {
		records, err := deps.dashboard.List(c.Request.Context(), filterFromQuery(c))
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{"applications": records, "count": len(records)})
	})

	protected.GET("/applications/export", func(c *gin.Context) {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="applications.csv"`)
		if err := deps.dashboard.ExportCSV(c.Request.Context(), c.Writer, filterFromQuery(c)); err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
	})

	protected.GET("/stats", func(c *gin.Context) {
		stats, err := deps.dashboard.Stats(c.Request.Context(), filterFromQuery(c))
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	protected.POST("/reviews", func(c *gin.Context) {
		var input review.Input
		if err := c.ShouldBindJSON(&input); err != nil {
			appErr := errors.NewValidationError("invalid request body")
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		if input.AdminName == "" {
			input.AdminName = c.GetString(auth.AdminKey)
		}

		rec, err := deps.reviews.Create(c.Request.Context(), &input)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		c.JSON(http.StatusCreated, rec)
	})

	protected.GET("/reviews", func(c *gin.Context) {
		reviews, err := deps.reviews.List(c.Request.Context())
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
	})

	return r
}

func filterFromQuery(c *gin.Context) admin.Filter {
	var f admin.Filter
	for _, raw := range c.QueryArray("domain") {
		if d, ok := types.ParseDomain(strings.TrimSpace(raw)); ok {
			f.Domains = append(f.Domains, d)
		}
	}
	for _, dept := range c.QueryArray("department") {
		if dept = strings.TrimSpace(dept); dept != "" {
			f.Departments = append(f.Departments, dept)
		}
	}
	f.Search = c.Query("q")
	return f
}
