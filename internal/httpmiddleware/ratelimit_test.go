package httpmiddleware

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

func TestTokenBucketAllowsUpToCapacity(t *testing.T) {
	l := NewTokenBucket(3, 60)
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(nil, "1.2.3.4"), "request %d", i)
	}
	assert.False(t, l.Allow(nil, "1.2.3.4"))
}

func TestTokenBucketKeysAreIndependent(t *testing.T) {
	l := NewTokenBucket(1, 60)
	assert.True(t, l.Allow(nil, "1.2.3.4"))
	assert.False(t, l.Allow(nil, "1.2.3.4"))
	assert.True(t, l.Allow(nil, "5.6.7.8"))
}

func TestTokenBucketDefaultCapacity(t *testing.T) {
	l := NewTokenBucket(0, 2)
	assert.True(t, l.Allow(nil, "k"))
	assert.True(t, l.Allow(nil, "k"))
	assert.False(t, l.Allow(nil, "k"))
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(NewTokenBucket(1, 60)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do().Code)

	rec := do()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"rate limit"}`, rec.Body.String())
}
