package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/internal/adapter/http/handlers"
	"taskhub/pkg/translator"
)

func pingOK(context.Context) error   { return nil }
func pingDown(context.Context) error { return errors.New("connection refused") }

func TestHealthHandler_MemoryStoreWithoutRedis(t *testing.T) {
	handler := handlers.NewHealthHandler("memory", nil, nil)

	router := newRouter()
	router.GET("/api/health", handler.CheckHealth)
	router.GET("/api/health/report", handler.CheckHealthReport)

	rec := serve(router, http.MethodGet, "/api/health", "", translator.LanguageEn)
	require.Equal(t, http.StatusOK, rec.Code)
	var basic handlers.HealthBasic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &basic))
	assert.Equal(t, handlers.StatusOk, basic.Message)

	rec = serve(router, http.MethodGet, "/api/health/report", "", translator.LanguageFr)
	require.Equal(t, http.StatusOK, rec.Code)
	var report handlers.HealthAdvanced
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "fr", report.Language)
	assert.Equal(t, handlers.HealthServices{
		Store: "memory",
		Mysql: handlers.StatusDisabled,
		Redis: handlers.StatusDisabled,
	}, report.Status)
}

func TestHealthHandler_DownService(t *testing.T) {
	handler := handlers.NewHealthHandler("mysql", pingOK, pingDown)

	router := newRouter()
	router.GET("/api/health", handler.CheckHealth)
	router.GET("/api/health/report", handler.CheckHealthReport)

	rec := serve(router, http.MethodGet, "/api/health", "", translator.LanguageEn)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(router, http.MethodGet, "/api/health/report", "", translator.LanguageEn)
	require.Equal(t, http.StatusOK, rec.Code)
	var report handlers.HealthAdvanced
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, handlers.StatusOk, report.Status.Mysql)
	assert.Equal(t, handlers.StatusDown, report.Status.Redis)
}
