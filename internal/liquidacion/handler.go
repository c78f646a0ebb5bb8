package liquidacion

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/barbero1999/api-turnos/internal/auth"
	"github.com/barbero1999/api-turnos/internal/intervalo"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB      *gorm.DB
	Service *Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Service: NewService()}
}

// fechaDeQuery lee ?fecha=AAAA-MM-DD y cae en hoy si no viene.
func fechaDeQuery(r *http.Request) (time.Time, error) {
	valor := r.URL.Query().Get("fecha")
	if valor == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation(intervalo.FormatoFecha, valor, time.Local)
}

// Quincenal liquida la quincena que contiene la fecha pedida.
func (h *Handler) Quincenal(w http.ResponseWriter, r *http.Request) {
	fecha, err := fechaDeQuery(r)
	if err != nil {
		http.Error(w, "fecha inválida, use AAAA-MM-DD", http.StatusBadRequest)
		return
	}

	periodo := PeriodoQuincenal(fecha)
	lineas, err := h.Service.PorPeriodo(h.DB, periodo)
	if err != nil {
		http.Error(w, "Error al calcular la liquidación", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"periodo": periodo,
		"lineas":  lineas,
	})
}

// PorRango liquida un rango arbitrario ?desde=AAAA-MM-DD&hasta=AAAA-MM-DD.
func (h *Handler) PorRango(w http.ResponseWriter, r *http.Request) {
	desde, err := time.ParseInLocation(intervalo.FormatoFecha, r.URL.Query().Get("desde"), time.Local)
	if err != nil {
		http.Error(w, "desde inválido, use AAAA-MM-DD", http.StatusBadRequest)
		return
	}
	hasta, err := time.ParseInLocation(intervalo.FormatoFecha, r.URL.Query().Get("hasta"), time.Local)
	if err != nil {
		http.Error(w, "hasta inválido, use AAAA-MM-DD", http.StatusBadRequest)
		return
	}
	if hasta.Before(desde) {
		http.Error(w, "hasta no puede ser anterior a desde", http.StatusBadRequest)
		return
	}

	periodo := Periodo{
		Etiqueta: "Rango personalizado",
		Desde:    desde,
		Hasta:    hasta.Add(24*time.Hour - time.Second),
	}
	lineas, err := h.Service.PorPeriodo(h.DB, periodo)
	if err != nil {
		http.Error(w, "Error al calcular la liquidación", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"periodo": periodo,
		"lineas":  lineas,
	})
}

// Semanal devuelve la facturación por día y empleado de los últimos siete
// días.
func (h *Handler) Semanal(w http.ResponseWriter, r *http.Request) {
	celdas, err := h.Service.ResumenSemanal(h.DB, time.Now())
	if err != nil {
		http.Error(w, "Error al armar el resumen", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(celdas)
}

// Mensual devuelve la facturación por semana del mes y empleado del mes en
// curso.
func (h *Handler) Mensual(w http.ResponseWriter, r *http.Request) {
	celdas, err := h.Service.ResumenMensual(h.DB, time.Now())
	if err != nil {
		http.Error(w, "Error al armar el resumen", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(celdas)
}

// Historial devuelve las semanas de producción del empleado. Un empleado
// solo puede ver su propio historial; administración ve cualquiera.
func (h *Handler) Historial(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if auth.RolDelContexto(r) == auth.RolEmpleado {
		usuarioID, ok := auth.UsuarioDelContexto(r)
		if !ok {
			http.Error(w, "No autorizado", http.StatusUnauthorized)
			return
		}
		propio, err := h.Service.Empleados.BuscarPorUsuario(h.DB, usuarioID)
		if err != nil || propio.ID != uint(id) {
			http.Error(w, "Solo puede consultar su propio historial", http.StatusForbidden)
			return
		}
	}

	semanas, err := h.Service.HistorialEmpleado(h.DB, uint(id), time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Empleado no encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Error al armar el historial", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(semanas)
}
