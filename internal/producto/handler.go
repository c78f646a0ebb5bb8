package producto

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

// Crear añade un producto al inventario.
func (h *Handler) Crear(w http.ResponseWriter, r *http.Request) {
	var p Producto
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if p.Nombre == "" {
		http.Error(w, "el nombre es obligatorio", http.StatusBadRequest)
		return
	}
	if p.Unidad == "" {
		p.Unidad = "uds"
	}

	if err := h.Repository.Guardar(h.DB, &p); err != nil {
		http.Error(w, "error al guardar producto", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// Listar retorna el inventario; con ?disponibles=1 solo lo que tiene stock.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var (
		lista []Producto
		err   error
	)
	if r.URL.Query().Get("disponibles") == "1" {
		lista, err = h.Repository.ListarConStock(h.DB)
	} else {
		lista, err = h.Repository.ListarTodos(h.DB)
	}
	if err != nil {
		http.Error(w, "error al listar productos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// Actualizar modifica los datos de un producto.
func (h *Handler) Actualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var datos Producto
	if err := json.NewDecoder(r.Body).Decode(&datos); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Actualizar(h.DB, uint(id), &datos); err != nil {
		http.Error(w, "producto no encontrado", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("producto actualizado correctamente"))
}

// Eliminar quita un producto del inventario.
func (h *Handler) Eliminar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Eliminar(h.DB, uint(id)); err != nil {
		http.Error(w, "error al eliminar producto", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("producto eliminado del inventario"))
}
