package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mealmatch/config"
	"mealmatch/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.requestIDMiddleware())

	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.GET("/healthz", h.healthz)

	api := router.Group("/api/v1")
	{
		api.GET("/availability/labels", h.getLabels)

		h.initAvailabilityRoutes(api)
	}
}

func (h *Handler) initAvailabilityRoutes(api *gin.RouterGroup) {
	availability := api.Group("/availability", h.authMiddleware())
	{
		me := availability.Group("/me")
		{
			me.GET("", h.getMyAvailability)
			me.PUT("", h.replaceMyAvailability)
			me.PATCH("/cells", h.updateMyCell)
			me.POST("/cells/toggle", h.toggleMyCell)
			me.GET("/calendar.ics", h.exportMyCalendar)
		}

		pair := availability.Group("/pair/:partnerId")
		{
			pair.GET("", h.getPairAvailability)
			pair.GET("/week", h.getPairWeek)
		}
	}
}

// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /healthz [get]
func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"name":    h.config.Name,
		"version": h.config.Version,
	})
}
