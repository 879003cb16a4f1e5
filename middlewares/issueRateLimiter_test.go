package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"citysense-be/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func limitedRouter(client *redis.Client, limit int) *gin.Engine {
	r := gin.New()
	r.POST("/issues",
		AuthMiddleware(testSecret, zap.NewNop()),
		IssueRateLimiter(client, "issue-limit", limit, zap.NewNop()),
		func(c *gin.Context) { c.Status(http.StatusCreated) },
	)
	return r
}

func postIssue(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/issues", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIssueRateLimiter_Limit(t *testing.T) {
	mr, client := setupTestRedis(t)
	r := limitedRouter(client, 2)
	token, user := tokenFor(t, models.RoleUser)

	assert.Equal(t, http.StatusCreated, postIssue(r, token).Code)
	assert.Equal(t, http.StatusCreated, postIssue(r, token).Code)

	w := postIssue(r, token)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "retry_after")

	key := "issue-limit:" + user.ID.Hex()
	count, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "3", count)
	assert.Equal(t, 24*time.Hour, mr.TTL(key))

	// another user has their own budget
	other, _ := tokenFor(t, models.RoleUser)
	assert.Equal(t, http.StatusCreated, postIssue(r, other).Code)
}

func TestIssueRateLimiter_WindowExpires(t *testing.T) {
	mr, client := setupTestRedis(t)
	r := limitedRouter(client, 1)
	token, _ := tokenFor(t, models.RoleUser)

	assert.Equal(t, http.StatusCreated, postIssue(r, token).Code)
	assert.Equal(t, http.StatusTooManyRequests, postIssue(r, token).Code)

	mr.FastForward(25 * time.Hour)
	assert.Equal(t, http.StatusCreated, postIssue(r, token).Code)
}

func TestIssueRateLimiter_NilClientPassesThrough(t *testing.T) {
	r := limitedRouter(nil, 0)
	token, _ := tokenFor(t, models.RoleUser)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, postIssue(r, token).Code)
	}
}

func TestIssueRateLimiter_RedisDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	r := limitedRouter(client, 5)
	token, _ := tokenFor(t, models.RoleUser)
	mr.Close()

	assert.Equal(t, http.StatusInternalServerError, postIssue(r, token).Code)
}

func TestIssueRateLimiter_RequiresUser(t *testing.T) {
	_, client := setupTestRedis(t)
	r := gin.New()
	r.POST("/issues", IssueRateLimiter(client, "issue-limit", 5, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/issues", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
