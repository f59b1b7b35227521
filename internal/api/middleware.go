package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
	"github.com/CHUNCHUNMARU-d/GYM/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Constants for context keys
const (
	ContextSubjectIDKey = "subjectID"
	ContextRoleKey      = "subjectRole"
)

// jwtClaims defines the structure we expect in the JWT payload.
// Mirrors authService.generateToken.
type jwtClaims struct {
	SubjectID string      `json:"uid"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware validating Bearer session tokens.
// Missing, malformed, badly signed and expired tokens all abort with 401.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		if !token.Valid || claims.SubjectID == "" || claims.Role == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Set(ContextSubjectIDKey, claims.SubjectID) // Hex representation
		c.Set(ContextRoleKey, claims.Role)

		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// RoleMiddleware creates middleware to check if the subject has the required
// role. Must run AFTER AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleRaw, exists := c.Get(ContextRoleKey)
		if !exists {
			abortWithError(c, http.StatusInternalServerError, "Subject role not found in context")
			return
		}

		role, ok := roleRaw.(domain.Role)
		if !ok {
			abortWithError(c, http.StatusInternalServerError, "Invalid subject role type in context")
			return
		}

		allowed := false
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				allowed = true
				break
			}
		}

		if !allowed {
			abortWithError(c, http.StatusForbidden, fmt.Sprintf("Access denied: role '%s' does not have permission", role))
			return
		}

		c.Next()
	}
}

// SubjectMiddleware verifies the token's subject still exists. A token
// that validates cryptographically but references a removed coach or
// client reads as 404. Must run AFTER AuthMiddleware.
func SubjectMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		subjectID, err := getSubjectIDFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Subject ID not found in context")
			return
		}

		roleRaw, _ := c.Get(ContextRoleKey)
		role, _ := roleRaw.(domain.Role)

		if err := authService.VerifySubject(c.Request.Context(), subjectID, role); err != nil {
			if errors.Is(err, service.ErrSubjectNotFound) {
				abortWithError(c, http.StatusNotFound, err.Error())
			} else {
				abortWithError(c, http.StatusInternalServerError, "Failed to resolve token subject")
			}
			return
		}

		c.Next()
	}
}

// getSubjectIDFromContext returns the authenticated subject's ObjectID.
func getSubjectIDFromContext(c *gin.Context) (primitive.ObjectID, error) {
	idRaw, exists := c.Get(ContextSubjectIDKey)
	if !exists {
		return primitive.NilObjectID, errors.New("subject ID not found in context")
	}
	idStr, ok := idRaw.(string)
	if !ok {
		return primitive.NilObjectID, errors.New("invalid subject ID type in context")
	}
	return primitive.ObjectIDFromHex(idStr)
}
