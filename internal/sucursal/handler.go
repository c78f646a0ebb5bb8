package sucursal

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// Crear da de alta una sucursal nueva.
func (h *Handler) Crear(w http.ResponseWriter, r *http.Request) {
	var s Sucursal
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if s.Nombre == "" || s.Direccion == "" {
		http.Error(w, "nombre y dirección son obligatorios", http.StatusBadRequest)
		return
	}
	if err := h.DB.Create(&s).Error; err != nil {
		http.Error(w, "error al guardar sucursal", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

// Listar retorna todas las sucursales.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var lista []Sucursal
	if err := h.DB.Find(&lista).Error; err != nil {
		http.Error(w, "error al listar sucursales", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}
