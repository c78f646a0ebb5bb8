package bloqueo

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/barbero1999/api-turnos/internal/auth"
	"github.com/barbero1999/api-turnos/internal/empleado"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB y repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Empleados  empleado.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Empleados:  empleado.NewRepository(),
	}
}

type crearBloqueoRequest struct {
	EmpleadoID  uint   `json:"empleadoId"`
	Fecha       string `json:"fecha"`
	HoraInicio  string `json:"horaInicio"`
	HoraFin     string `json:"horaFin"`
	DiaCompleto bool   `json:"diaCompleto"`
	Motivo      string `json:"motivo"`
}

// Crear registra un bloqueo. Un empleado solo puede bloquear su propia
// agenda; el admin puede bloquear la de cualquiera.
func (h *Handler) Crear(w http.ResponseWriter, r *http.Request) {
	var req crearBloqueoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if req.Fecha == "" {
		http.Error(w, "debes seleccionar una fecha obligatoriamente", http.StatusBadRequest)
		return
	}

	rol := auth.RolDelContexto(r)
	if rol == auth.RolEmpleado {
		userID, _ := auth.UsuarioDelContexto(r)
		e, err := h.Empleados.BuscarPorUsuario(h.DB, userID)
		if err != nil {
			http.Error(w, "empleado no encontrado", http.StatusNotFound)
			return
		}
		req.EmpleadoID = e.ID
	}
	if req.EmpleadoID == 0 {
		http.Error(w, "empleadoId es obligatorio", http.StatusBadRequest)
		return
	}

	b := Bloqueo{
		EmpleadoID:  req.EmpleadoID,
		Fecha:       req.Fecha,
		HoraInicio:  req.HoraInicio,
		HoraFin:     req.HoraFin,
		DiaCompleto: req.DiaCompleto,
		Motivo:      req.Motivo,
	}
	// Jornada completa guarda siempre 00:00–23:59.
	if b.DiaCompleto {
		b.HoraInicio = "00:00"
		b.HoraFin = "23:59"
	} else if b.HoraInicio == "" || b.HoraFin == "" {
		http.Error(w, "horaInicio y horaFin son obligatorias", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Guardar(h.DB, &b); err != nil {
		http.Error(w, "error al guardar el bloqueo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(b)
}

// Listar retorna todos los bloqueos (admin) o los propios (empleado).
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	rol := auth.RolDelContexto(r)

	if rol == auth.RolEmpleado {
		userID, _ := auth.UsuarioDelContexto(r)
		e, err := h.Empleados.BuscarPorUsuario(h.DB, userID)
		if err != nil {
			http.Error(w, "empleado no encontrado", http.StatusNotFound)
			return
		}
		lista, err := h.Repository.ListarPorEmpleado(h.DB, e.ID)
		if err != nil {
			http.Error(w, "error al listar bloqueos", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(lista)
		return
	}

	lista, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "error al listar bloqueos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// Actualizar edita fecha, horario o motivo de un bloqueo existente.
func (h *Handler) Actualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	b, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "bloqueo no encontrado", http.StatusNotFound)
		return
	}

	var req crearBloqueoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if req.Fecha != "" {
		b.Fecha = req.Fecha
	}
	b.Motivo = req.Motivo
	b.DiaCompleto = req.DiaCompleto
	if req.DiaCompleto {
		b.HoraInicio = "00:00"
		b.HoraFin = "23:59"
	} else {
		b.HoraInicio = req.HoraInicio
		b.HoraFin = req.HoraFin
	}

	if err := h.Repository.Guardar(h.DB, b); err != nil {
		http.Error(w, "error al actualizar el bloqueo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

// Eliminar restaura la disponibilidad. El empleado solo puede borrar sus
// propios bloqueos.
func (h *Handler) Eliminar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	b, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "bloqueo no encontrado", http.StatusNotFound)
		return
	}

	if auth.RolDelContexto(r) == auth.RolEmpleado {
		userID, _ := auth.UsuarioDelContexto(r)
		e, err := h.Empleados.BuscarPorUsuario(h.DB, userID)
		if err != nil || b.EmpleadoID != e.ID {
			http.Error(w, "acceso denegado", http.StatusForbidden)
			return
		}
	}

	if err := h.Repository.Eliminar(h.DB, b.ID); err != nil {
		http.Error(w, "error al eliminar el bloqueo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("disponibilidad restaurada"))
}
