package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims del token: identidad del usuario y su rol (cliente, empleado, admin).
type Claims struct {
	UsuarioID uint   `json:"usuarioId"`
	Rol       string `json:"rol"`
	jwt.RegisteredClaims
}

// Tiempo de vida del access token
const AccessTTL = 12 * time.Hour

var secreto []byte

// Configurar fija la clave de firma. Debe llamarse una vez al arrancar.
func Configurar(clave string) {
	secreto = []byte(clave)
}

// GenerarToken firma un JWT HS256 para el usuario.
func GenerarToken(usuarioID uint, rol string) (string, error) {
	if len(secreto) == 0 {
		return "", errors.New("clave JWT no configurada")
	}

	now := time.Now()
	claims := &Claims{
		UsuarioID: usuarioID,
		Rol:       rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(usuarioID),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secreto)
}

// ParseAndValidate verifica firma y expiración y devuelve las claims.
func ParseAndValidate(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secreto, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token inválido")
	}

	c, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("claims inválidas")
	}
	return c, nil
}
