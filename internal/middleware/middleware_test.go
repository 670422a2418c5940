package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lamp_catalog/internal/access"
	"lamp_catalog/internal/domain"
	"lamp_catalog/internal/testutil"
	"lamp_catalog/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAndRequireAction(t *testing.T) {
	db := testutil.OpenDB(t)
	merch := testutil.CreateUser(t, db, "merch", domain.RoleMerchandiser)
	sales := testutil.CreateUser(t, db, "sales", domain.RoleSalesManager)
	tokenFor := func(u domain.User) string {
		token, err := utils.GenerateJWT(u.ID, u.Username, secret)
		require.NoError(t, err)
		return token
	}

	strict := gin.New()
	strict.GET("/", JWTAuthMiddleware(secret, db), RequireAction(access.EditLamp), func(c *gin.Context) {
		c.String(http.StatusOK, string(Principal(c).Role))
	})

	assert.Equal(t, http.StatusUnauthorized, do(strict, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(strict, "garbage").Code)
	assert.Equal(t, http.StatusForbidden, do(strict, tokenFor(sales)).Code)

	w := do(strict, tokenFor(merch))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "merchandiser", w.Body.String())

	optional := gin.New()
	optional.GET("/", OptionalAuthMiddleware(secret, db), RequireAction(access.ManageCart), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	assert.Equal(t, http.StatusUnauthorized, do(optional, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(optional, "garbage").Code)
	assert.Equal(t, http.StatusNoContent, do(optional, tokenFor(sales)).Code)
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.GET("/", NewRateLimiter(2).Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "").Code)
}
