package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUsuarioID ctxKey = "usuarioID"
	CtxRol       ctxKey = "rol"
)

// Roles conocidos por el sistema.
const (
	RolCliente  = "cliente"
	RolEmpleado = "empleado"
	RolAdmin    = "admin"
)

// MiddlewareAutenticacion valida el Bearer token y deja identidad y rol en
// el contexto. La autorización fina queda en cada handler.
func MiddlewareAutenticacion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ParseAndValidate(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUsuarioID, claims.UsuarioID)
		ctx = context.WithValue(ctx, CtxRol, claims.Rol)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRol corta la cadena si el rol del contexto no está permitido.
func RequireRol(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rol, _ := r.Context().Value(CtxRol).(string)
			for _, permitido := range roles {
				if rol == permitido {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "Acceso restringido", http.StatusForbidden)
		})
	}
}

// UsuarioDelContexto devuelve el ID del usuario autenticado.
func UsuarioDelContexto(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(CtxUsuarioID).(uint)
	return id, ok
}

// RolDelContexto devuelve el rol del usuario autenticado.
func RolDelContexto(r *http.Request) string {
	rol, _ := r.Context().Value(CtxRol).(string)
	return rol
}
