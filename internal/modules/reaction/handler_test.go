package reaction

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/blognoitro/core/internal/config"
	"github.com/blognoitro/core/internal/modules/identity"
	pkgredis "github.com/blognoitro/core/internal/pkg/redis"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func handlerFixture(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	db, _ := setupMockDB(t)

	mr := miniredis.RunT(t)
	rawClient := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rawClient.Close() })

	identitySvc := identity.NewService(db, pkgredis.Wrap(rawClient),
		config.AvatarConfig{URLTemplate: "https://avatars.example/%s.svg"}, zap.NewNop())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(NewService(db), identitySvc, zap.NewNop())
	h.RegisterRoutes(r.Group("/api"))
	return r, mr
}

func TestHandlerToggle_RejectedRequestWritesNothing(t *testing.T) {
	r, mr := handlerFixture(t)

	// missing postId fails validation before any write; the author row and
	// its cache entry must not appear
	body := `{"authorId":"a9"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/reactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Thiếu thông tin bắt buộc")
	assert.Empty(t, mr.Keys())
}
