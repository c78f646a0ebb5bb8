package servicio

import "gorm.io/gorm"

// Servicio es un ítem del catálogo de servicios. Cambiar el precio acá no
// toca turnos históricos: los totales se congelan al momento del cobro.
type Servicio struct {
	gorm.Model
	Nombre          string  `json:"nombre" gorm:"not null"`
	Precio          float64 `json:"precio" gorm:"not null"`
	DuracionMinutos int     `json:"duracionMinutos" gorm:"not null;default:30"`
}

// Migrate crea la tabla en la base de datos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Servicio{})
}
