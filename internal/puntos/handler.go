package puntos

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/barbero1999/api-turnos/internal/usuario"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB y repositories
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Usuarios   usuario.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Usuarios:   usuario.NewRepository(),
	}
}

// CrearRegla da de alta una regla de puntos.
func (h *Handler) CrearRegla(w http.ResponseWriter, r *http.Request) {
	var regla ReglaPuntos
	if err := json.NewDecoder(r.Body).Decode(&regla); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if regla.RangoMax < regla.RangoMin || regla.Puntos <= 0 {
		http.Error(w, "rango o puntos inválidos", http.StatusBadRequest)
		return
	}

	if err := h.Repository.GuardarRegla(h.DB, &regla); err != nil {
		http.Error(w, "error al guardar la regla", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(regla)
}

// ListarReglas retorna todas las reglas ordenadas por rango.
func (h *Handler) ListarReglas(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarReglas(h.DB)
	if err != nil {
		http.Error(w, "error al listar reglas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// EliminarRegla borra una regla de puntos.
func (h *Handler) EliminarRegla(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.EliminarRegla(h.DB, uint(id)); err != nil {
		http.Error(w, "error al eliminar la regla", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("regla eliminada"))
}

// CrearPremio da de alta un premio canjeable.
func (h *Handler) CrearPremio(w http.ResponseWriter, r *http.Request) {
	var p Premio
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if p.Nombre == "" || p.PuntosRequeridos <= 0 {
		http.Error(w, "nombre y puntos requeridos son obligatorios", http.StatusBadRequest)
		return
	}

	if err := h.Repository.GuardarPremio(h.DB, &p); err != nil {
		http.Error(w, "error al guardar el premio", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// ListarPremios retorna los premios ordenados por costo.
func (h *Handler) ListarPremios(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarPremios(h.DB)
	if err != nil {
		http.Error(w, "error al listar premios", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// EliminarPremio borra un premio.
func (h *Handler) EliminarPremio(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.EliminarPremio(h.DB, uint(id)); err != nil {
		http.Error(w, "error al eliminar el premio", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("premio eliminado"))
}

type canjeRequest struct {
	Puntos int `json:"puntos"`
}

// Canjear descuenta puntos del cliente y deja el asiento en el historial,
// todo en una transacción.
func (h *Handler) Canjear(w http.ResponseWriter, r *http.Request) {
	usuarioID, err := strconv.Atoi(mux.Vars(r)["usuarioId"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req canjeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Puntos <= 0 {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Usuarios.BuscarPorID(h.DB, uint(usuarioID))
	if err != nil {
		http.Error(w, "usuario no encontrado", http.StatusNotFound)
		return
	}

	if u.PuntosAcumulados < req.Puntos {
		http.Error(w, "el cliente no dispone de puntos suficientes", http.StatusConflict)
		return
	}

	nombrePremio := "Premio Especial"
	if p, err := h.Repository.BuscarPremioPorPuntos(h.DB, req.Puntos); err == nil {
		nombrePremio = p.Nombre
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "error al buscar el premio", http.StatusInternalServerError)
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Usuarios.RestarPuntos(tx, u.ID, req.Puntos); err != nil {
			return err
		}
		return h.Repository.RegistrarCanje(tx, &Canje{
			UsuarioID:    u.ID,
			PremioNombre: nombrePremio,
			PuntosUsados: req.Puntos,
		})
	})
	if err != nil {
		http.Error(w, "error al registrar el canje", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"cliente": u.Nombre,
		"premio":  nombrePremio,
		"saldo":   u.PuntosAcumulados - req.Puntos,
	})
}
