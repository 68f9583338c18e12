package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barberpro/internal/config"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// EventSource não envia headers; o stream SSE manda o token na query
			if t := c.Query("access_token"); t != "" {
				authHeader = "Bearer " + t
			}
		}
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Autenticação necessária.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Sessão inválida ou expirada.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Sessão inválida.")
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil || role == "" {
			httperr.Unauthorized(c, "invalid_token_payload", "Sessão inválida.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// RequireRole deve vir depois de AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != role {
			httperr.Forbidden(c, "forbidden", "Acesso restrito.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID devolve o usuário autenticado (uuid.Nil fora de rotas protegidas).
func UserID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}
