package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

const ContextActor = "actor"

// idClaims are tried in order; identity providers disagree on the name.
var idClaims = []string{"sub", "id", "userId"}

// roleClaims may hold a string, a number or a nested object.
var roleClaims = []string{"role", "roleId"}

// AuthMiddleware verifies an HS256 bearer token and stores the caller as an
// actor.Actor under ContextActor.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c, "invalid_authorization_header")
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			unauthorized(c, "invalid_token")
			return
		}

		who, ok := actorFromClaims(claims)
		if !ok {
			unauthorized(c, "invalid_token_payload")
			return
		}

		c.Set(ContextActor, who)
		c.Next()
	}
}

func actorFromClaims(claims jwt.MapClaims) (actor.Actor, bool) {
	var id uint
	for _, key := range idClaims {
		if v, ok := claims[key]; ok {
			if parsed, ok := actor.ParseID(v); ok {
				id = parsed
				break
			}
		}
	}
	if id == 0 {
		return actor.Actor{}, false
	}

	var role any
	for _, key := range roleClaims {
		if v, ok := claims[key]; ok && v != nil {
			role = v
			break
		}
	}

	return actor.New(id, role), true
}

// ActorFrom returns the caller set by AuthMiddleware.
func ActorFrom(c *gin.Context) (actor.Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return actor.Actor{}, false
	}
	who, ok := v.(actor.Actor)
	return who, ok
}

// RequireRoles rejects callers whose normalized role is not listed.
func RequireRoles(roles ...actor.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, ok := ActorFrom(c)
		if !ok {
			unauthorized(c, "unauthenticated")
			return
		}
		if !who.HasRole(roles...) {
			httperr.Write(c, http.StatusForbidden, "forbidden", "Your role cannot perform this action.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Authentication required.")
	c.Abort()
}
