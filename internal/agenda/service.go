package agenda

import (
	"errors"
	"sort"
	"time"

	"github.com/barbero1999/api-turnos/internal/bloqueo"
	"github.com/barbero1999/api-turnos/internal/intervalo"
	"github.com/barbero1999/api-turnos/internal/servicio"
	"github.com/barbero1999/api-turnos/internal/turno"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Service arma la disponibilidad de cada empleado y agenda turnos sin
// permitir solapamientos.
type Service struct {
	Turnos    turno.Repository
	Bloqueos  bloqueo.Repository
	Servicios servicio.Repository
	validate  *validator.Validate
}

func NewService() *Service {
	return &Service{
		Turnos:    turno.NewRepository(),
		Bloqueos:  bloqueo.NewRepository(),
		Servicios: servicio.NewRepository(),
		validate:  validator.New(),
	}
}

// SolicitudTurno es el pedido de reserva. TurnoID distinto de cero indica
// reprogramación de un turno existente.
type SolicitudTurno struct {
	ClienteID     uint   `json:"clienteId" validate:"required"`
	NombreCliente string `json:"nombreCliente"`
	EmpleadoID    uint   `json:"empleadoId" validate:"required"`
	ServicioID    uint   `json:"servicioId" validate:"required"`
	Fecha         string `json:"fecha" validate:"required,datetime=2006-01-02"`
	Hora          string `json:"hora" validate:"required,datetime=15:04"`
	TurnoID       uint   `json:"turnoId"`
}

// IntervalosOcupados arma la secuencia de franjas ocupadas del empleado en
// esa fecha: turnos no cancelados expandidos por la duración de su servicio
// más los bloqueos manuales del día. excluirTurnoID deja afuera el turno en
// reprogramación. La secuencia sale ordenada pero sin fusionar solapes; el
// chequeo de conflictos compara contra cada franja cruda.
func (s *Service) IntervalosOcupados(db *gorm.DB, empleadoID uint, fecha time.Time, excluirTurnoID uint) ([]intervalo.Intervalo, error) {
	turnos, err := s.Turnos.ListarActivosPorEmpleadoYFecha(db, empleadoID, fecha, excluirTurnoID)
	if err != nil {
		return nil, err
	}

	ocupados := make([]intervalo.Intervalo, 0, len(turnos))
	for _, t := range turnos {
		ocupados = append(ocupados, intervalo.Desde(t.FechaHora, s.duracionDe(db, t.ServicioID)))
	}

	bloqueos, err := s.Bloqueos.ListarPorEmpleadoYFecha(db, empleadoID, fecha.Format(intervalo.FormatoFecha))
	if err != nil {
		return nil, err
	}
	for _, b := range bloqueos {
		iv, err := b.AIntervalo(fecha)
		if err != nil {
			// un bloqueo con horas ilegibles no puede frenar la agenda
			continue
		}
		ocupados = append(ocupados, iv)
	}

	sort.Slice(ocupados, func(i, j int) bool {
		return ocupados[i].Inicio.Before(ocupados[j].Inicio)
	})
	return ocupados, nil
}

// Agendar valida la solicitud y crea o reprograma el turno como una sola
// unidad: chequeo de conflictos y escritura corren dentro de la misma
// transacción, y cualquier falla deja todo como estaba.
func (s *Service) Agendar(db *gorm.DB, sol SolicitudTurno) (*turno.Turno, error) {
	if err := s.validate.Struct(sol); err != nil {
		return nil, ErrValidacion
	}

	fechaHora, err := intervalo.CombinarFechaHora(sol.Fecha, sol.Hora)
	if err != nil {
		return nil, ErrValidacion
	}
	if !fechaHora.After(time.Now()) {
		return nil, ErrFechaPasada
	}

	srv, err := s.Servicios.BuscarPorID(db, sol.ServicioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	solicitado := intervalo.Desde(fechaHora, srv.DuracionMinutos)

	var resultado *turno.Turno
	err = db.Transaction(func(tx *gorm.DB) error {
		ocupados, err := s.IntervalosOcupados(tx, sol.EmpleadoID, fechaHora, sol.TurnoID)
		if err != nil {
			return err
		}
		for _, oc := range ocupados {
			if solicitado.Superpone(oc) {
				return &ConflictoError{Ocupado: oc}
			}
		}

		if sol.TurnoID != 0 {
			existente, err := s.Turnos.BuscarPorID(tx, sol.TurnoID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNoEncontrado
				}
				return err
			}
			existente.Adicionales = nil
			existente.FechaHora = fechaHora
			existente.EmpleadoID = sol.EmpleadoID
			existente.ServicioID = &srv.ID
			existente.Estado = turno.EstadoPendiente
			if err := s.Turnos.Guardar(tx, existente); err != nil {
				return err
			}
			resultado = existente
			return nil
		}

		nuevo := &turno.Turno{
			NombreCliente: sol.NombreCliente,
			FechaHora:     fechaHora,
			Estado:        turno.EstadoPendiente,
			ClienteID:     sol.ClienteID,
			EmpleadoID:    sol.EmpleadoID,
			ServicioID:    &srv.ID,
		}
		if err := s.Turnos.Guardar(tx, nuevo); err != nil {
			return err
		}
		resultado = nuevo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

func (s *Service) duracionDe(db *gorm.DB, servicioID *uint) int {
	if servicioID == nil {
		return intervalo.DuracionPorDefecto
	}
	srv, err := s.Servicios.BuscarPorID(db, *servicioID)
	if err != nil {
		return intervalo.DuracionPorDefecto
	}
	return intervalo.DuracionMinutos(srv.DuracionMinutos)
}
