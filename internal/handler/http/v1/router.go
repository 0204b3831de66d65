package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	apiKey := APIKeyAuthMiddleware(h.cfg, h.logger)

	// Сообщения о ДТП принимаются и от анонимных заявителей
	accidents := api.Group("/accidents")
	{
		reports := accidents.Group("", IdentityMiddleware(h.cfg, h.logger))
		reports.POST("/sensor", h.reportSensor)
		reports.POST("/voice", h.reportVoice)
		reports.POST("/manual", h.reportManual)

		accidents.GET("", apiKey, h.listIncidents)
		accidents.GET("/:id", apiKey, h.getIncident)
	}

	localAlerts := api.Group("/local-alerts", apiKey)
	{
		localAlerts.POST("", h.broadcastLocalAlert)
		localAlerts.GET("", h.listLocalAlerts)
		localAlerts.GET("/:id", h.getLocalAlert)
		localAlerts.POST("/:id/status", h.updateLocalAlertStatus)
	}

	cloudAlerts := api.Group("/cloud-alerts")
	{
		cloudAlerts.POST("", apiKey, h.sendCloudAlert)
		cloudAlerts.GET("", apiKey, h.listCloudAlerts)
		cloudAlerts.GET("/:id", apiKey, h.getCloudAlert)
		// Обратный вызов провайдера доставки подписывается HMAC вместо API-ключа
		cloudAlerts.POST("/:id/status", WebhookSignatureMiddleware(h.cfg, h.logger), h.updateCloudAlertStatus)
	}

	api.GET("/alerts/statistics", apiKey, h.getStatistics)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
