package agenda

import (
	"errors"
	"fmt"

	"github.com/barbero1999/api-turnos/internal/intervalo"
)

var (
	// ErrValidacion indica datos faltantes o mal formados en la solicitud.
	ErrValidacion = errors.New("faltan datos para completar la reserva")

	// ErrFechaPasada indica que el instante pedido no está en el futuro.
	ErrFechaPasada = errors.New("no puedes agendar en una fecha u hora que ya pasó")

	// ErrNoEncontrado indica que el turno, empleado o servicio referido no existe.
	ErrNoEncontrado = errors.New("registro no encontrado")
)

// ConflictoError lleva la franja ocupada que chocó con la solicitud, para
// poder mostrársela al usuario. Se reporta el primer choque encontrado.
type ConflictoError struct {
	Ocupado intervalo.Intervalo
}

func (e *ConflictoError) Error() string {
	return fmt.Sprintf("el empleado ya tiene una cita de %s a %s",
		e.Ocupado.Inicio.Format(intervalo.FormatoHora),
		e.Ocupado.Fin.Format(intervalo.FormatoHora))
}
