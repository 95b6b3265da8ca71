package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type propertyRoutes struct{}

func (propertyRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/properties")
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	group.GET("/:id/units", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"property_id": c.Param("id")})
	})
}

type tenantRoutes struct{}

func (tenantRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tenants", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})
}

func TestRouter_DefaultVersionPrefix(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Register(propertyRoutes{}).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/properties", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_WithAPIVersion(t *testing.T) {
	engine := gin.New()
	NewRouter(engine, WithAPIVersion("v2")).Register(propertyRoutes{}).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v2/properties", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// v1 prefix is not mounted
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/properties", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_RegisterChaining(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).
		Register(propertyRoutes{}).
		Register(tenantRoutes{}).
		Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/properties", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/tenants", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRouter_NestedRouteParams(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Register(propertyRoutes{}).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/properties/prop-42/units", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "prop-42")
}

func TestRouter_NoRegistrars(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/properties", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
