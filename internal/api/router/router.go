package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alphalocks/reports-be/internal/api/handler"
	"github.com/alphalocks/reports-be/internal/api/middleware"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": deps.Config.App.Name,
		})
	})

	authHandler := handler.NewAuthHandler(deps)
	messageHandler := handler.NewMessageHandler(deps)
	jobHandler := handler.NewJobHandler(deps)
	importHandler := handler.NewImportHandler(deps)
	reportHandler := handler.NewReportHandler(deps)
	technicianHandler := handler.NewTechnicianHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")

	// POST /api/v1/auth/login - Exchange credentials for a bearer token
	v1.POST("/auth/login", authHandler.Login)

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(&deps.Config.Auth))
	{
		// POST /api/v1/messages/parse - Preview jobs parsed from raw text
		authed.POST("/messages/parse", messageHandler.ParseMessages)

		jobs := authed.Group("/jobs")
		{
			// POST /api/v1/jobs - Confirm and persist a job
			jobs.POST("", jobHandler.CreateJob)

			// GET /api/v1/jobs - List jobs with filtering
			jobs.GET("", jobHandler.ListJobs)

			// GET /api/v1/jobs/:job_id - Get job details
			jobs.GET("/:job_id", jobHandler.GetJob)

			// PUT /api/v1/jobs/:job_id - Replace job fields and recalculate
			jobs.PUT("/:job_id", jobHandler.UpdateJob)

			// DELETE /api/v1/jobs/:job_id - Delete a job
			jobs.DELETE("/:job_id", jobHandler.DeleteJob)

			// POST /api/v1/jobs/:job_id/paid - Mark a job paid out
			jobs.POST("/:job_id/paid", jobHandler.MarkPaid)

			// POST /api/v1/jobs/:job_id/unpaid - Revert a payout mark
			jobs.POST("/:job_id/unpaid", jobHandler.MarkUnpaid)
		}

		// POST /api/v1/imports - Map an uploaded spreadsheet to candidates
		authed.POST("/imports", importHandler.ImportSpreadsheet)

		reports := authed.Group("/reports")
		{
			// GET /api/v1/reports/html - Render the HTML commission report
			reports.GET("/html", reportHandler.HTMLReport)

			// GET /api/v1/reports/xlsx - Download the Excel commission report
			reports.GET("/xlsx", reportHandler.ExcelReport)
		}

		technicians := authed.Group("/technicians")
		{
			// GET /api/v1/technicians - List technicians
			technicians.GET("", technicianHandler.ListTechnicians)

			// POST /api/v1/technicians - Create a technician
			technicians.POST("", technicianHandler.CreateTechnician)

			// PUT /api/v1/technicians/:tech_id - Update a technician
			technicians.PUT("/:tech_id", technicianHandler.UpdateTechnician)

			// DELETE /api/v1/technicians/:tech_id - Delete a technician
			technicians.DELETE("/:tech_id", technicianHandler.DeleteTechnician)
		}
	}

	return r
}
