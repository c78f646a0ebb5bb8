package utils

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword retorna el hash bcrypt de la clave en texto.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerificarPassword compara el hash bcrypt con la clave en texto.
func VerificarPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

var (
	tieneMayuscula = regexp.MustCompile(`[A-Z]`)
	tieneMinuscula = regexp.MustCompile(`[a-z]`)
	tieneDigito    = regexp.MustCompile(`\d`)
	tieneEspecial  = regexp.MustCompile(`[!@#$%&*]`)
)

// ValidarPassword aplica la política de claves del sistema.
func ValidarPassword(password string) error {
	switch {
	case len(password) < 8:
		return errors.New("mínimo 8 caracteres")
	case !tieneMayuscula.MatchString(password):
		return errors.New("falta una mayúscula")
	case !tieneMinuscula.MatchString(password):
		return errors.New("falta una minúscula")
	case !tieneDigito.MatchString(password):
		return errors.New("falta un número")
	case !tieneEspecial.MatchString(password):
		return errors.New("falta un carácter especial (!@#$%&*)")
	}
	return nil
}
