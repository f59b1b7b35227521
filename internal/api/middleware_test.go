package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
)

const testSecret = "middleware-test-secret"

func mintToken(t *testing.T, secret string, subjectID primitive.ObjectID, role domain.Role, ttl time.Duration) string {
	t.Helper()
	claims := &jwtClaims{
		SubjectID: subjectID.Hex(),
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.Hex(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedRouter(roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := gin.HandlersChain{AuthMiddleware(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RoleMiddleware(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		id, err := getSubjectIDFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"subject": id.Hex()})
	})
	router.GET("/protected", handlers...)
	return router
}

func doGet(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := newProtectedRouter()
	w := doGet(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := newProtectedRouter()
	for _, header := range []string{"Bearer", "Basic abc", "Bearer a b"} {
		w := doGet(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareForgedSignature(t *testing.T) {
	router := newProtectedRouter()
	token := mintToken(t, "wrong-secret", primitive.NewObjectID(), domain.RoleCoach, time.Hour)
	w := doGet(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	router := newProtectedRouter()
	token := mintToken(t, testSecret, primitive.NewObjectID(), domain.RoleCoach, -time.Hour)
	w := doGet(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router := newProtectedRouter()
	subjectID := primitive.NewObjectID()
	token := mintToken(t, testSecret, subjectID, domain.RoleCoach, time.Hour)
	w := doGet(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), subjectID.Hex())
}

func TestRoleMiddlewareCrossRole(t *testing.T) {
	router := newProtectedRouter(domain.RoleCoach)

	clientToken := mintToken(t, testSecret, primitive.NewObjectID(), domain.RoleClient, time.Hour)
	w := doGet(router, "Bearer "+clientToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	coachToken := mintToken(t, testSecret, primitive.NewObjectID(), domain.RoleCoach, time.Hour)
	w = doGet(router, "Bearer "+coachToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
