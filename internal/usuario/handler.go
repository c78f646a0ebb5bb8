package usuario

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/barbero1999/api-turnos/internal/auth"
	"github.com/barbero1999/api-turnos/internal/utils"
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

type registroRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registro crea una cuenta de cliente nueva.
func (h *Handler) Registro(w http.ResponseWriter, r *http.Request) {
	var req registroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Nombre == "" || req.Email == "" {
		http.Error(w, "nombre y email son obligatorios", http.StatusBadRequest)
		return
	}

	if err := utils.ValidarPassword(req.Password); err != nil {
		http.Error(w, "seguridad: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.Repository.BuscarPorEmail(h.DB, req.Email); err == nil {
		http.Error(w, "el correo ya está registrado", http.StatusConflict)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "error al procesar la clave", http.StatusInternalServerError)
		return
	}

	u := Usuario{
		Nombre:   req.Nombre,
		Email:    req.Email,
		Password: hash,
		Rol:      auth.RolCliente,
	}
	if err := h.Repository.Guardar(h.DB, &u); err != nil {
		http.Error(w, "error al crear la cuenta", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(u)
}

// Login genera un JWT para credenciales válidas.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorEmail(h.DB, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		http.Error(w, "credenciales inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarPassword(u.Password, req.Password) {
		http.Error(w, "correo o contraseña incorrectos", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerarToken(u.ID, u.Rol)
	if err != nil {
		http.Error(w, "error al generar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token, "rol": u.Rol})
}

// Me retorna el usuario logueado.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UsuarioDelContexto(r)
	if !ok {
		http.Error(w, "no autenticado", http.StatusUnauthorized)
		return
	}

	u, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "usuario no encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

// BuscarClientes busca clientes por nombre o email para el mostrador.
func (h *Handler) BuscarClientes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		json.NewEncoder(w).Encode([]Usuario{})
		return
	}

	clientes, err := h.Repository.BuscarClientes(h.DB, q)
	if err != nil {
		http.Error(w, "error al buscar clientes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(clientes)
}
