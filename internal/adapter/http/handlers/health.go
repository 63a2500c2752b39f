package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/adapter/http/middleware"
)

const (
	StatusOk        = "ok"
	StatusDown      = "down"
	StatusDisabled  = "disabled"
	healthDBTimeout = 2 * time.Second
)

// Pinger checks a backing service. A nil Pinger means the service is not configured.
type Pinger func(ctx context.Context) error

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Store string `json:"store"`
	Mysql string `json:"mysql"`
	Redis string `json:"redis"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	storeDriver string
	mysql       Pinger
	redis       Pinger
}

func NewHealthHandler(storeDriver string, mysql, redis Pinger) *HealthHandler {
	return &HealthHandler{storeDriver: storeDriver, mysql: mysql, redis: redis}
}

// CheckHealth fails only when a configured service is unreachable.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	ctx := c.Request.Context()
	statusCode := http.StatusOK
	message := StatusOk

	if check(ctx, h.mysql) == StatusDown || check(ctx, h.redis) == StatusDown {
		statusCode = http.StatusInternalServerError
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	ctx := c.Request.Context()

	c.JSON(http.StatusOK, HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Language:          middleware.GetLang(c),
		Status: HealthServices{
			Store: h.storeDriver,
			Mysql: check(ctx, h.mysql),
			Redis: check(ctx, h.redis),
		},
	})
}

func check(ctx context.Context, ping Pinger) string {
	if ping == nil {
		return StatusDisabled
	}
	// Avoid hanging health checks if the service stalls.
	timeoutCtx, cancel := context.WithTimeout(ctx, healthDBTimeout)
	defer cancel()
	if ping(timeoutCtx) != nil {
		return StatusDown
	}
	return StatusOk
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
