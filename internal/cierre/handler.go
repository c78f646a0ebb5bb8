package cierre

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/barbero1999/api-turnos/internal/notificacion"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB          *gorm.DB
	Service     *Service
	Notificador *notificacion.Notificador
}

func NewHandler(db *gorm.DB, notificador *notificacion.Notificador) *Handler {
	return &Handler{DB: db, Service: NewService(), Notificador: notificador}
}

type completarRequest struct {
	ProductoExtraID uint `json:"productoExtraId"`
}

// Completar cierra el turno y cobra la cuenta. Acepta un producto de última
// hora en el body; si no hay stock se ignora en silencio, igual que en caja.
func (h *Handler) Completar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req completarRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "JSON inválido", http.StatusBadRequest)
			return
		}
	}

	resultado, err := h.Service.CompletarTurno(h.DB, uint(id), req.ProductoExtraID)
	if err != nil {
		h.responderError(w, err)
		return
	}

	if !resultado.YaEstabaCerrado {
		h.Notificador.TurnoCompletado(resultado.Turno.ID, resultado.Turno.MontoTotal, resultado.PuntosOtorgados)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resultado)
}

type adicionalesRequest struct {
	Items []ItemAdicional `json:"items"`
}

// ReemplazarAdicionales deja la cuenta del turno con exactamente los ítems
// enviados.
func (h *Handler) ReemplazarAdicionales(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req adicionalesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	t, err := h.Service.ReemplazarAdicionales(h.DB, uint(id), req.Items)
	if err != nil {
		h.responderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

// AgregarAdicional suma un único ítem a la cuenta.
func (h *Handler) AgregarAdicional(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var item ItemAdicional
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	t, err := h.Service.AgregarAdicional(h.DB, uint(id), item)
	if err != nil {
		h.responderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

// ListarVentas devuelve los asientos de venta de productos del turno, para
// la planilla de contabilidad.
func (h *Handler) ListarVentas(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	ventas, err := h.Service.Turnos.ListarVentasPorTurno(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Error al listar las ventas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ventas)
}

// ListarAdicionales devuelve la cuenta actual del turno.
func (h *Handler) ListarAdicionales(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	adicionales, err := h.Service.Turnos.ListarAdicionales(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Error al listar los adicionales", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(adicionales)
}

func (h *Handler) responderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoEncontrado):
		http.Error(w, "Turno o ítem no encontrado", http.StatusNotFound)
	case errors.Is(err, ErrTurnoCancelado):
		http.Error(w, "El turno está cancelado y no se puede cobrar", http.StatusConflict)
	case errors.Is(err, ErrSinStock):
		http.Error(w, "El producto no tiene stock", http.StatusConflict)
	case errors.Is(err, ErrTipoInvalido):
		http.Error(w, "El tipo debe ser servicio o producto", http.StatusBadRequest)
	default:
		http.Error(w, "Error al procesar el cierre", http.StatusInternalServerError)
	}
}
