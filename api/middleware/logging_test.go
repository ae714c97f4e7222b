package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter 构建一个带指定中间件的测试路由
func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw...)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

func TestSetTraceIDGeneratesID(t *testing.T) {
	router := newTestRouter(SetTraceID())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	traceID := w.Header().Get("X-Trace-ID")
	require.NotEmpty(t, traceID)
	// 生成的追踪ID必须是合法的UUID
	_, err := uuid.Parse(traceID)
	assert.NoError(t, err)
}

func TestSetTraceIDKeepsIncomingID(t *testing.T) {
	router := newTestRouter(SetTraceID())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Trace-ID", "client-supplied-id")
	router.ServeHTTP(w, req)

	assert.Equal(t, "client-supplied-id", w.Header().Get("X-Trace-ID"))
}

func TestResponseLoggerPassesBodyThrough(t *testing.T) {
	// 响应体记录只在debug级别生效，且不能改变返回给客户端的内容
	oldLevel := log.Level
	log.SetLevel(logrus.DebugLevel)
	defer log.SetLevel(oldLevel)

	router := newTestRouter(ResponseLogger())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
