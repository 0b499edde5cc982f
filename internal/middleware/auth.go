package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

const ContextPrincipal = "principal"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Principal, error)
}

func AuthMiddleware(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "missing_authorization_header", "Falta el encabezado de autorización.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Encabezado de autorización inválido.")
			return
		}

		p, err := a.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			code, ok := httperr.BusinessCode(err)
			if !ok {
				abort(c, http.StatusInternalServerError, "internal_error", "Error interno.")
				return
			}
			abort(c, http.StatusUnauthorized, code, "Sesión inválida o expirada. Iniciá sesión nuevamente.")
			return
		}

		c.Set(ContextPrincipal, *p)
		c.Next()
	}
}

// RequireRole lets the request through only for the given roles.
func RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "unauthenticated", "No autenticado.")
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "forbidden", "No tenés permisos para esta acción.")
	}
}

func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

func abort(c *gin.Context, status int, code, message string) {
	httperr.Write(c, status, code, message)
	c.Abort()
}
