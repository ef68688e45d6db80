// Package v1 exposes the HTTP API: appointments, patients, staff,
// the contact form, health and metrics endpoints.
package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wardflow/wardflow/internal/config"
	"github.com/wardflow/wardflow/internal/service"
	"github.com/wardflow/wardflow/pkg/metrics"
)

type Router struct {
	cfg       *config.Config
	services  *service.Services
	collector *metrics.Collector
	log       *zap.Logger
	startedAt time.Time
}

func NewRouter(cfg *config.Config, services *service.Services, collector *metrics.Collector, log *zap.Logger) *Router {
	return &Router{
		cfg:       cfg,
		services:  services,
		collector: collector,
		log:       log,
		startedAt: time.Now(),
	}
}

func (r *Router) Engine() *gin.Engine {
	if r.cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		recoveryMiddleware(r.log),
		loggerMiddleware(r.log),
		metricsMiddleware(r.collector),
	)

	engine.GET("/healthz", r.health)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	appointments := NewAppointmentHandler(r.services.Appointments)
	patients := NewPatientHandler(r.services.Patients)
	staff := NewStaffHandler(r.services.Staff)
	contact := NewContactHandler(r.log)

	api := engine.Group("/api/v1")
	{
		ag := api.Group("/appointments")
		{
			ag.POST("", appointments.Create)
			ag.GET("", appointments.List)
			ag.GET("/:id", appointments.Get)
			ag.PUT("/:id", appointments.Update)
			ag.DELETE("/:id", appointments.Cancel)
		}

		pg := api.Group("/patients")
		{
			pg.POST("", patients.Create)
			pg.GET("", patients.List)
			pg.GET("/:id", patients.Get)
			pg.PUT("/:id", patients.Update)
			pg.DELETE("/:id", patients.Delete)
		}

		sg := api.Group("/staff")
		{
			sg.POST("", staff.Create)
			sg.GET("", staff.List)
			sg.GET("/:id", staff.Get)
			sg.PUT("/:id", staff.Update)
			sg.DELETE("/:id", staff.Delete)
		}

		api.POST("/contact", contact.Submit)
	}

	return engine
}

func (r *Router) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": r.cfg.App.Name,
		"version": r.cfg.App.Version,
		"storage": r.cfg.Storage.Driver,
		"uptime":  time.Since(r.startedAt).Round(time.Second).String(),
	})
}
