package turno

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/barbero1999/api-turnos/internal/auth"
	"github.com/barbero1999/api-turnos/internal/empleado"
	"github.com/barbero1999/api-turnos/internal/intervalo"
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

// ListarMios retorna los turnos del cliente autenticado, más reciente
// primero.
func (h *Handler) ListarMios(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UsuarioDelContexto(r)
	if !ok {
		http.Error(w, "no autenticado", http.StatusUnauthorized)
		return
	}

	lista, err := h.Repository.ListarPorCliente(h.DB, userID)
	if err != nil {
		http.Error(w, "error al listar turnos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// Agenda retorna los turnos de un día: toda la agenda para el admin, la
// propia para el empleado. ?fecha=YYYY-MM-DD, por defecto hoy.
func (h *Handler) Agenda(w http.ResponseWriter, r *http.Request) {
	fechaStr := r.URL.Query().Get("fecha")
	fecha := time.Now()
	if fechaStr != "" {
		var err error
		fecha, err = time.ParseInLocation(intervalo.FormatoFecha, fechaStr, time.Local)
		if err != nil {
			http.Error(w, "fecha inválida", http.StatusBadRequest)
			return
		}
	}

	if auth.RolDelContexto(r) == auth.RolEmpleado {
		userID, _ := auth.UsuarioDelContexto(r)
		e, err := h.Empleados.BuscarPorUsuario(h.DB, userID)
		if err != nil {
			http.Error(w, "empleado no encontrado", http.StatusNotFound)
			return
		}
		lista, err := h.Repository.ListarDelDiaPorEmpleado(h.DB, e.ID, fecha)
		if err != nil {
			http.Error(w, "error al listar la agenda", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(lista)
		return
	}

	lista, err := h.Repository.ListarPorFecha(h.DB, fecha)
	if err != nil {
		http.Error(w, "error al listar la agenda", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// Cancelar pasa el turno a cancelado. Cancelar un turno ya cancelado no
// hace nada; un turno completado ya no se puede tocar.
func (h *Handler) Cancelar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	t, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "turno no encontrado", http.StatusNotFound)
		return
	}

	switch t.Estado {
	case EstadoCancelado:
		// idempotente
	case EstadoCompletado:
		http.Error(w, "el turno ya fue completado", http.StatusConflict)
		return
	default:
		t.Estado = EstadoCancelado
		if err := h.Repository.Guardar(h.DB, t); err != nil {
			http.Error(w, "no se pudo cancelar el turno", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}
