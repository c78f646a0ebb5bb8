package servicio

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB y repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Crear da de alta un servicio del catálogo.
func (h *Handler) Crear(w http.ResponseWriter, r *http.Request) {
	var s Servicio
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if s.Nombre == "" || s.Precio <= 0 {
		http.Error(w, "nombre y precio son obligatorios", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Guardar(h.DB, &s); err != nil {
		http.Error(w, "error al guardar servicio", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

// Listar retorna el catálogo completo.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "error al listar servicios", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// Actualizar modifica nombre, precio o duración de un servicio.
func (h *Handler) Actualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var datos Servicio
	if err := json.NewDecoder(r.Body).Decode(&datos); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Actualizar(h.DB, uint(id), &datos); err != nil {
		http.Error(w, "servicio no encontrado", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("servicio actualizado correctamente"))
}

// Eliminar quita un servicio del catálogo.
func (h *Handler) Eliminar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Eliminar(h.DB, uint(id)); err != nil {
		http.Error(w, "error al eliminar servicio", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("servicio eliminado"))
}
