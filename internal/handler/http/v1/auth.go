package v1

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shenikar/accident_alert_system/internal/config"
	"github.com/shenikar/accident_alert_system/internal/push"
	"github.com/sirupsen/logrus"
)

// reporterIDKey - ключ контекста gin с идентификатором заявителя
const reporterIDKey = "reporterID"

// APIKeyAuthMiddleware - middleware для аутентификации по API-ключу
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			// Проверяем также заголовок Authorization: Bearer
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				apiKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if apiKey == "" {
			log.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Error: "API key required"})
			return
		}

		isValid := false
		for _, key := range cfg.APIKeys {
			if key == apiKey {
				isValid = true
				break
			}
		}

		if !isValid {
			log.Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Error: "Invalid API key"})
			return
		}

		c.Next()
	}
}

// IdentityMiddleware определяет заявителя по необязательному JWT (HS256).
// Отсутствующий или невалидный токен означает анонимного заявителя, запрос не отклоняется.
func IdentityMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	secret := []byte(cfg.JWTSecret)
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(secret) == 0 || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			log.WithError(err).Debug("Invalid identity token, treating reporter as anonymous")
			c.Next()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if id := reporterFromClaims(claims); id != "" {
				c.Set(reporterIDKey, id)
			}
		}
		c.Next()
	}
}

// reporterFromClaims: сначала sub, затем userId (строкой или числом)
func reporterFromClaims(claims jwt.MapClaims) string {
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub
	}
	switch id := claims["userId"].(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	return ""
}

// reporterID возвращает заявителя, установленного IdentityMiddleware, или nil
func reporterID(c *gin.Context) *string {
	if v, ok := c.Get(reporterIDKey); ok {
		if id, ok := v.(string); ok {
			return &id
		}
	}
	return nil
}

// WebhookSignatureMiddleware проверяет HMAC-подпись тела обратного вызова о доставке
func WebhookSignatureMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.WebhookSecret == "" {
			log.Error("Delivery callback rejected: WEBHOOK_SECRET is not configured")
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Error: "webhook signature not configured"})
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, Response{Error: "invalid request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !push.VerifySignature(body, c.GetHeader(push.SignatureHeader), cfg.WebhookSecret) {
			log.Warn("Delivery callback with invalid signature")
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Error: "invalid signature"})
			return
		}

		c.Next()
	}
}
