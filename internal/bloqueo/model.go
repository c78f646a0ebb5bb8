package bloqueo

import (
	"time"

	"github.com/barbero1999/api-turnos/internal/intervalo"
	"gorm.io/gorm"
)

// Bloqueo es un período marcado a mano como no disponible por un empleado
// (vacaciones, trámite, media jornada). Es independiente de los turnos: se
// mezclan recién al consultar disponibilidad.
type Bloqueo struct {
	gorm.Model
	EmpleadoID  uint   `json:"empleadoId" gorm:"not null;index"`
	Fecha       string `json:"fecha" gorm:"size:10;not null"`
	HoraInicio  string `json:"horaInicio" gorm:"size:5"`
	HoraFin     string `json:"horaFin" gorm:"size:5"`
	DiaCompleto bool   `json:"diaCompleto" gorm:"not null;default:false"`
	Motivo      string `json:"motivo" gorm:"size:200"`
}

// Migrate crea la tabla en la base de datos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Bloqueo{})
}

// AIntervalo expande el bloqueo sobre la fecha dada. Un bloqueo de día
// completo cubre 00:00 a 23:59.
func (b Bloqueo) AIntervalo(fecha time.Time) (intervalo.Intervalo, error) {
	if b.DiaCompleto {
		return intervalo.DiaCompleto(fecha), nil
	}

	inicio, err := intervalo.HoraEnFecha(fecha, b.HoraInicio)
	if err != nil {
		return intervalo.Intervalo{}, err
	}
	fin, err := intervalo.HoraEnFecha(fecha, b.HoraFin)
	if err != nil {
		return intervalo.Intervalo{}, err
	}
	return intervalo.Intervalo{Inicio: inicio, Fin: fin}, nil
}
