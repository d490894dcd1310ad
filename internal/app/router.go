package app

import (
	"esg_assessment_backend/docs"
	"esg_assessment_backend/internal/config"
	"esg_assessment_backend/internal/middleware"
	"esg_assessment_backend/internal/model"
	"esg_assessment_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerUserRoutes(router, c, repos, cfg)
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Browsable without an account; admins get unpublished rows when
		// a token is attached.
		public.GET("/faqs", middleware.TryAuthMiddleware(a.Config), c.faq.ListFAQs)
		public.GET("/events", middleware.TryAuthMiddleware(a.Config), c.event.ListEvents)
		public.GET("/events/:id", middleware.TryAuthMiddleware(a.Config), c.event.GetEvent)
		public.GET("/materials", middleware.TryAuthMiddleware(a.Config), c.material.ListMaterials)
		public.GET("/materials/:id", middleware.TryAuthMiddleware(a.Config), c.material.GetMaterial)
	}
}

func (a *App) registerUserRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/profile", c.user.UpdateProfile)
		authGroup.PUT("/profile/password", c.user.ChangePassword)
		authGroup.POST("/profile/avatar", c.user.UploadAvatar)

		assessment := authGroup.Group("/assessment")
		{
			assessment.GET("/questions", c.question.GetQuestionBank)
			assessment.GET("/years", c.question.ListYears)

			wizard := assessment.Group("/wizard")
			{
				wizard.POST("/start", c.assessment.StartWizard)
				wizard.GET("", c.assessment.GetState)
				wizard.PUT("/answer", c.assessment.SetAnswer)
				wizard.PUT("/toggle", c.assessment.ToggleOption)
				wizard.POST("/navigate", c.assessment.Navigate)
				wizard.POST("/submit", c.assessment.Submit)
			}

			assessment.POST("/drafts", c.assessment.SaveDraft)
			assessment.GET("/drafts", c.assessment.ListDrafts)
			assessment.DELETE("/drafts/:year", c.assessment.DeleteDraft)

			assessment.GET("/results", c.assessment.ListResults)
			assessment.GET("/results/:year", c.assessment.GetResult)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)

		admin.GET("/questions", c.question.ListQuestions)
		admin.POST("/questions", c.question.CreateQuestion)
		admin.PUT("/questions/:id", c.question.UpdateQuestion)
		admin.DELETE("/questions/:id", c.question.DeleteQuestion)

		admin.GET("/submissions", c.report.ListSubmissions)
		admin.GET("/submissions/:id", c.report.GetSubmission)
		admin.GET("/reports/export", c.report.ExportSubmissions)

		admin.POST("/events", c.event.CreateEvent)
		admin.PUT("/events/:id", c.event.UpdateEvent)
		admin.DELETE("/events/:id", c.event.DeleteEvent)
		admin.POST("/events/:id/banner", c.event.UploadBanner)

		admin.POST("/materials", c.material.CreateMaterial)
		admin.PUT("/materials/:id", c.material.UpdateMaterial)
		admin.DELETE("/materials/:id", c.material.DeleteMaterial)
		admin.POST("/materials/:id/file", c.material.UploadMaterialFile)

		admin.POST("/faqs", c.faq.CreateFAQ)
		admin.PUT("/faqs/:id", c.faq.UpdateFAQ)
		admin.DELETE("/faqs/:id", c.faq.DeleteFAQ)
	}
}
