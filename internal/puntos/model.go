package puntos

import (
	"time"

	"gorm.io/gorm"
)

// ReglaPuntos mapea un rango de monto [RangoMin, RangoMax] (ambos extremos
// incluidos) a una cantidad fija de puntos. El mantenimiento de reglas debe
// mantener los rangos disyuntos; si se solapan, gana la regla de menor id.
type ReglaPuntos struct {
	gorm.Model
	RangoMin float64 `json:"rangoMin" gorm:"not null"`
	RangoMax float64 `json:"rangoMax" gorm:"not null"`
	Puntos   int     `json:"puntos" gorm:"not null"`
}

// Premio es un canje disponible del programa de fidelidad.
type Premio struct {
	gorm.Model
	Nombre           string `json:"nombre" gorm:"not null"`
	PuntosRequeridos int    `json:"puntosRequeridos" gorm:"not null"`
	Descripcion      string `json:"descripcion" gorm:"size:200"`
}

// Canje es el registro histórico de puntos gastados. Solo se agrega, nunca
// se edita.
type Canje struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UsuarioID    uint      `gorm:"not null;index" json:"usuarioId"`
	PremioNombre string    `gorm:"size:100;not null" json:"premioNombre"`
	PuntosUsados int       `gorm:"not null" json:"puntosUsados"`
	Fecha        time.Time `json:"fecha"`
}

// Migrate crea las tablas del programa de puntos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ReglaPuntos{}, &Premio{}, &Canje{})
}
