package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestChannelAllowed_NoPredicateAllowsAll(t *testing.T) {
	v := Viewer{}

	assert.True(t, v.ChannelAllowed("anything"))
}

func TestChannelAllowed_PredicateApplied(t *testing.T) {
	v := Viewer{AllowChannel: func(id string) bool { return id == "news24" }}

	assert.True(t, v.ChannelAllowed("news24"))
	assert.False(t, v.ChannelAllowed("sports-one"))
}

func TestViewerContext_ResolvesFromHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got Viewer
	router := gin.New()
	router.Use(ViewerContext(DefaultViewerResolver))
	router.GET("/", func(c *gin.Context) {
		got = ViewerFrom(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Telecast-User", "alice")
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, got.Authenticated)
}

func TestViewerContext_AnonymousWithoutHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got Viewer
	router := gin.New()
	router.Use(ViewerContext(nil))
	router.GET("/", func(c *gin.Context) {
		got = ViewerFrom(c)
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, got.Authenticated)
	assert.True(t, got.ChannelAllowed("any"))
}

func TestViewerFrom_MissingContextDefaultsToAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	v := ViewerFrom(c)

	assert.False(t, v.Authenticated)
	assert.True(t, v.ChannelAllowed("any"))
}
