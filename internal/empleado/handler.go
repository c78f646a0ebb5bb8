package empleado

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/barbero1999/api-turnos/internal/auth"
	"github.com/barbero1999/api-turnos/internal/usuario"
	"github.com/barbero1999/api-turnos/internal/utils"
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

type crearEmpleadoRequest struct {
	Nombre       string  `json:"nombre"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Comision     float64 `json:"comision"`
	Especialidad string  `json:"especialidad"`
	SucursalID   *uint   `json:"sucursalId"`
}

// Crear da de alta el acceso y el perfil del empleado en una sola
// transacción: si falla cualquiera de los dos, no queda nada a medias.
func (h *Handler) Crear(w http.ResponseWriter, r *http.Request) {
	var req crearEmpleadoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Nombre == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "nombre, email y password son obligatorios", http.StatusBadRequest)
		return
	}
	if req.Comision <= 0 {
		req.Comision = ComisionPorDefecto
	}
	if req.Especialidad == "" {
		req.Especialidad = "Barbero"
	}

	if _, err := h.Usuarios.BuscarPorEmail(h.DB, req.Email); err == nil {
		http.Error(w, "el correo ya existe", http.StatusConflict)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "error al procesar la clave", http.StatusInternalServerError)
		return
	}

	var e Empleado
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		u := usuario.Usuario{
			Nombre:     req.Nombre,
			Email:      req.Email,
			Password:   hash,
			Rol:        auth.RolEmpleado,
			Confirmado: true,
		}
		if err := h.Usuarios.Guardar(tx, &u); err != nil {
			return err
		}

		e = Empleado{
			Nombre:             req.Nombre,
			Especialidad:       req.Especialidad,
			ComisionPorcentaje: req.Comision,
			UsuarioID:          u.ID,
			SucursalID:         req.SucursalID,
		}
		return h.Repository.Guardar(tx, &e)
	})
	if err != nil {
		http.Error(w, "error al crear empleado", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(e)
}

// Listar retorna todos los empleados.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "error al listar empleados", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// Actualizar cambia comisión, especialidad o sucursal del empleado.
func (h *Handler) Actualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "empleado no encontrado", http.StatusNotFound)
		return
	}

	var datos Empleado
	if err := json.NewDecoder(r.Body).Decode(&datos); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if datos.Nombre != "" {
		existente.Nombre = datos.Nombre
	}
	if datos.Especialidad != "" {
		existente.Especialidad = datos.Especialidad
	}
	if datos.ComisionPorcentaje > 0 {
		existente.ComisionPorcentaje = datos.ComisionPorcentaje
	}
	if datos.SucursalID != nil {
		existente.SucursalID = datos.SucursalID
	}

	if err := h.Repository.Guardar(h.DB, existente); err != nil {
		http.Error(w, "error al actualizar empleado", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existente)
}

// Eliminar borra el perfil y arrastra el acceso del usuario asociado.
func (h *Handler) Eliminar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	e, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "empleado no encontrado", http.StatusNotFound)
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Eliminar(tx, e.ID); err != nil {
			return err
		}
		return h.Usuarios.Eliminar(tx, e.UsuarioID)
	})
	if err != nil {
		http.Error(w, "error al eliminar empleado", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("empleado eliminado"))
}
