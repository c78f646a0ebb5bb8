package usuario

import (
	"gorm.io/gorm"
)

// Usuario es la identidad de acceso: clientes, empleados y administradores.
// El saldo de puntos de fidelidad vive acá porque pertenece a la persona,
// no al perfil de empleado.
type Usuario struct {
	gorm.Model
	Nombre           string `json:"nombre"`
	Email            string `json:"email" gorm:"unique"`
	Password         string `json:"-"`
	Rol              string `json:"rol" gorm:"size:20;not null"`
	PuntosAcumulados int    `json:"puntosAcumulados" gorm:"not null;default:0"`
	Confirmado       bool   `json:"confirmado" gorm:"not null;default:false"`
}

// Migrate crea la tabla en la base de datos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}
