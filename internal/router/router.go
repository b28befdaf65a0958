package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/helpy/paths"
	"github.com/psds-microservice/marketplace-service/api"
	"github.com/psds-microservice/marketplace-service/internal/handler"
	"github.com/psds-microservice/marketplace-service/internal/middleware"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps: хендлеры и параметры, из которых собирается HTTP-роутер.
type Deps struct {
	JWTSecret   string
	CORSOrigins []string
	DB          handler.Pinger

	ServiceRequests *handler.ServiceRequestHandler
	Estimates       *handler.EstimateHandler
	Disputes        *handler.DisputeHandler
	Messages        *handler.MessageHandler
	Devices         *handler.DeviceHandler
	Realtime        *handler.RealtimeHandler
}

func New(d Deps) http.Handler {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(), middleware.RequestLogger())
	r.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "route not found"}) })

	r.GET(paths.PathHealth, handler.Health)
	r.GET(paths.PathReady, handler.Ready(d.DB))
	r.GET(paths.PathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, paths.PathSwagger+"/") })
	r.GET(paths.PathSwagger+"/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = paths.PathSwagger + "/index.html"
			c.Request.RequestURI = paths.PathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(paths.PathSwagger+"/openapi.json"))(c)
	})

	admin := middleware.RequireRole(model.RoleAdmin)
	professional := middleware.RequireRole(model.RoleProfessional)
	client := middleware.RequireRole(model.RoleClient)

	apiGroup := r.Group("/api", middleware.Auth(d.JWTSecret))
	{
		sr := apiGroup.Group("/service-requests")
		sr.POST("", client, d.ServiceRequests.Create)
		sr.GET("", d.ServiceRequests.List)
		sr.GET("/available", professional, d.ServiceRequests.Available)
		sr.POST("/accept", professional, d.ServiceRequests.Accept)
		sr.POST("/refuse", professional, d.ServiceRequests.Refuse)
		sr.GET("/:id", d.ServiceRequests.Get)
		sr.GET("/:id/history", d.ServiceRequests.History)
		sr.POST("/:id/start", professional, d.ServiceRequests.Start)
		sr.POST("/:id/validate", client, d.ServiceRequests.Validate)
		sr.POST("/:id/dispute", middleware.RequireRole(model.RoleClient, model.RoleProfessional), d.ServiceRequests.Dispute)
		sr.POST("/:id/confirm", professional, d.ServiceRequests.Confirm)
		sr.POST("/:id/down-payment", client, d.ServiceRequests.DownPayment)
		sr.GET("/:id/messages", d.Messages.List)
		sr.POST("/:id/messages", d.Messages.Send)

		adm := apiGroup.Group("/admin", admin)
		adm.GET("/billing-estimates", d.Estimates.List)
		adm.POST("/billing-estimates", d.Estimates.Create)
		adm.GET("/billing-estimates/:id", d.Estimates.Get)
		adm.GET("/disputes", d.Disputes.List)
		adm.POST("/disputes/:id/resolve", d.Disputes.Resolve)

		cl := apiGroup.Group("/client", client)
		cl.GET("/billing-estimates", d.Estimates.ListForClient)
		cl.POST("/billing-estimates/respond", d.Estimates.Respond)

		apiGroup.POST("/devices", d.Devices.Register)
		apiGroup.GET("/ws", d.Realtime.Connect)
	}

	return corsHandler(d.CORSOrigins).Handler(r)
}

func corsHandler(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: origins[0] != "*",
	})
}
