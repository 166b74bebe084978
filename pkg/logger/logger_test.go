package logger_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/logger"
)

func TestNew_TeesToSink(t *testing.T) {
	var sink bytes.Buffer
	log, err := logger.New("production", &sink)
	require.NoError(t, err)

	log.Info("checkout committed")
	_ = log.Sync()

	assert.Contains(t, sink.String(), `"msg":"checkout committed"`)
}

func TestRequestID_PropagatesHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	r := gin.New()
	r.Use(logger.RequestID())
	r.GET("/", func(c *gin.Context) {
		logger.FromContext(c.Request.Context(), base).Info("handled")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-42", logs.All()[0].ContextMap()[logger.RequestIDKey])
}

func TestFromContext_UnknownWithoutID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	logger.FromContext(context.Background(), zap.New(core)).Info("background")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "unknown", logs.All()[0].ContextMap()[logger.RequestIDKey])
}
