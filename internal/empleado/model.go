package empleado

import "gorm.io/gorm"

// ComisionPorDefecto es el porcentaje que cobra un empleado si el admin no
// define otro al crearlo.
const ComisionPorDefecto = 70.0

// Empleado es el perfil profesional asociado a un usuario con rol empleado.
type Empleado struct {
	gorm.Model
	Nombre             string  `json:"nombre" gorm:"not null"`
	Especialidad       string  `json:"especialidad"`
	ComisionPorcentaje float64 `json:"comisionPorcentaje" gorm:"not null;default:70"`
	UsuarioID          uint    `json:"usuarioId" gorm:"not null;index"`
	SucursalID         *uint   `json:"sucursalId"`
}

// Migrate crea la tabla en la base de datos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Empleado{})
}
