package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(limit int64, handler gin.HandlerFunc) *gin.Engine {
		router := gin.New()
		router.Use(BodyLimit(limit))
		router.POST("/tenants", handler)
		return router
	}

	okHandler := func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	}

	t.Run("allows request within limit", func(t *testing.T) {
		router := newRouter(1024, okHandler)

		req := httptest.NewRequest("POST", "/tenants", strings.NewReader(`{"full_name":"Wanjiku Kamau"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects oversized content length", func(t *testing.T) {
		router := newRouter(100, okHandler)

		req := httptest.NewRequest("POST", "/tenants", strings.NewReader(strings.Repeat("x", 200)))
		req.ContentLength = 200
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
	})

	t.Run("allows bodyless requests", func(t *testing.T) {
		router := gin.New()
		router.Use(BodyLimit(10))
		router.GET("/tenants", okHandler)

		req := httptest.NewRequest("GET", "/tenants", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cuts off chunked uploads past the limit", func(t *testing.T) {
		router := newRouter(50, func(c *gin.Context) {
			buf := make([]byte, 200)
			if _, err := c.Request.Body.Read(buf); err != nil {
				c.String(http.StatusBadRequest, "body too large")
				return
			}
			c.String(http.StatusOK, "ok")
		})

		// No Content-Length, forces the MaxBytesReader path
		req := httptest.NewRequest("POST", "/tenants", strings.NewReader(strings.Repeat("x", 100)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
