package agenda

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/barbero1999/api-turnos/internal/auth"
	"github.com/barbero1999/api-turnos/internal/intervalo"
	"github.com/barbero1999/api-turnos/internal/notificacion"
	"github.com/barbero1999/api-turnos/internal/usuario"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB          *gorm.DB
	Service     *Service
	Usuarios    usuario.Repository
	Notificador *notificacion.Notificador
}

func NewHandler(db *gorm.DB, notificador *notificacion.Notificador) *Handler {
	return &Handler{
		DB:          db,
		Service:     NewService(),
		Usuarios:    usuario.NewRepository(),
		Notificador: notificador,
	}
}

type franjaDTO struct {
	Inicio string `json:"inicio"`
	Fin    string `json:"fin"`
}

// Disponibilidad devuelve las franjas ya ocupadas del empleado en la fecha
// pedida, para que el cliente elija un horario libre. ?excluirTurnoId deja
// afuera un turno propio, así la pantalla de reprogramación no muestra como
// ocupada la franja que se está moviendo.
func (h *Handler) Disponibilidad(w http.ResponseWriter, r *http.Request) {
	empleadoID, err := strconv.ParseUint(r.URL.Query().Get("empleadoId"), 10, 32)
	if err != nil {
		http.Error(w, "empleadoId inválido", http.StatusBadRequest)
		return
	}
	fecha, err := time.ParseInLocation(intervalo.FormatoFecha, r.URL.Query().Get("fecha"), time.Local)
	if err != nil {
		http.Error(w, "fecha inválida, use AAAA-MM-DD", http.StatusBadRequest)
		return
	}

	var excluirTurnoID uint
	if valor := r.URL.Query().Get("excluirTurnoId"); valor != "" {
		id, err := strconv.ParseUint(valor, 10, 32)
		if err != nil {
			http.Error(w, "excluirTurnoId inválido", http.StatusBadRequest)
			return
		}
		excluirTurnoID = uint(id)
	}

	ocupados, err := h.Service.IntervalosOcupados(h.DB, uint(empleadoID), fecha, excluirTurnoID)
	if err != nil {
		http.Error(w, "Error al consultar la disponibilidad", http.StatusInternalServerError)
		return
	}

	franjas := make([]franjaDTO, 0, len(ocupados))
	for _, oc := range ocupados {
		franjas = append(franjas, franjaDTO{
			Inicio: oc.Inicio.Format(intervalo.FormatoHora),
			Fin:    oc.Fin.Format(intervalo.FormatoHora),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(franjas)
}

// Agendar crea un turno nuevo. Los clientes solo pueden reservar para sí
// mismos; recepción y administración pueden reservar a nombre de cualquiera.
func (h *Handler) Agendar(w http.ResponseWriter, r *http.Request) {
	var sol SolicitudTurno
	if err := json.NewDecoder(r.Body).Decode(&sol); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	sol.TurnoID = 0

	if auth.RolDelContexto(r) == auth.RolCliente {
		usuarioID, ok := auth.UsuarioDelContexto(r)
		if !ok {
			http.Error(w, "No autorizado", http.StatusUnauthorized)
			return
		}
		sol.ClienteID = usuarioID
	}
	h.completarNombre(&sol)

	t, err := h.Service.Agendar(h.DB, sol)
	if err != nil {
		h.responderError(w, err)
		return
	}

	h.Notificador.TurnoAgendado(t.ID, t.NombreCliente, t.FechaHora)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(t)
}

// Reprogramar mueve un turno existente a otra fecha, hora o empleado. El
// turno reprogramado vuelve al estado pendiente.
func (h *Handler) Reprogramar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var sol SolicitudTurno
	if err := json.NewDecoder(r.Body).Decode(&sol); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	sol.TurnoID = uint(id)

	existente, err := h.Service.Turnos.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Turno no encontrado", http.StatusNotFound)
		return
	}
	if existente.EsTerminal() {
		http.Error(w, "El turno ya fue completado o cancelado", http.StatusConflict)
		return
	}

	if auth.RolDelContexto(r) == auth.RolCliente {
		usuarioID, ok := auth.UsuarioDelContexto(r)
		if !ok {
			http.Error(w, "No autorizado", http.StatusUnauthorized)
			return
		}
		if existente.ClienteID != usuarioID {
			http.Error(w, "No puede reprogramar turnos de otro cliente", http.StatusForbidden)
			return
		}
		sol.ClienteID = usuarioID
	} else if sol.ClienteID == 0 {
		sol.ClienteID = existente.ClienteID
	}
	h.completarNombre(&sol)

	t, err := h.Service.Agendar(h.DB, sol)
	if err != nil {
		h.responderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

func (h *Handler) completarNombre(sol *SolicitudTurno) {
	if sol.NombreCliente != "" || sol.ClienteID == 0 {
		return
	}
	if u, err := h.Usuarios.BuscarPorID(h.DB, sol.ClienteID); err == nil {
		sol.NombreCliente = u.Nombre
	}
}

func (h *Handler) responderError(w http.ResponseWriter, err error) {
	var conflicto *ConflictoError
	switch {
	case errors.As(err, &conflicto):
		http.Error(w, conflicto.Error(), http.StatusConflict)
	case errors.Is(err, ErrValidacion):
		http.Error(w, "Faltan datos obligatorios o el formato es inválido", http.StatusBadRequest)
	case errors.Is(err, ErrFechaPasada):
		http.Error(w, "No se pueden agendar turnos en el pasado", http.StatusBadRequest)
	case errors.Is(err, ErrNoEncontrado):
		http.Error(w, "Recurso no encontrado", http.StatusNotFound)
	default:
		http.Error(w, "Error al agendar el turno", http.StatusInternalServerError)
	}
}
