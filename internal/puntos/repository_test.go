package puntos

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/barbero1999/api-turnos/internal/database"
	"github.com/barbero1999/api-turnos/internal/usuario"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func abrirDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Conectar(":memory:")
	require.NoError(t, err)
	require.NoError(t, usuario.Migrate(db))
	require.NoError(t, Migrate(db))
	return db
}

func TestBuscarReglaPorMontoIncluyeBordes(t *testing.T) {
	db := abrirDB(t)
	repo := NewRepository()
	require.NoError(t, db.Create(&ReglaPuntos{RangoMin: 0, RangoMax: 20000, Puntos: 5}).Error)
	require.NoError(t, db.Create(&ReglaPuntos{RangoMin: 20001, RangoMax: 50000, Puntos: 15}).Error)

	casos := []struct {
		monto  float64
		puntos int
	}{
		{0, 5},
		{20000, 5},
		{20001, 15},
		{50000, 15},
	}
	for _, c := range casos {
		regla, err := repo.BuscarReglaPorMonto(db, c.monto)
		require.NoError(t, err)
		require.Equal(t, c.puntos, regla.Puntos, "monto %v", c.monto)
	}

	_, err := repo.BuscarReglaPorMonto(db, 50001)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBuscarReglaSolapadaGanaLaPrimera(t *testing.T) {
	db := abrirDB(t)
	repo := NewRepository()
	require.NoError(t, db.Create(&ReglaPuntos{RangoMin: 0, RangoMax: 10000, Puntos: 5}).Error)
	require.NoError(t, db.Create(&ReglaPuntos{RangoMin: 5000, RangoMax: 15000, Puntos: 99}).Error)

	regla, err := repo.BuscarReglaPorMonto(db, 8000)
	require.NoError(t, err)
	require.Equal(t, 5, regla.Puntos)
}

func canjearVia(t *testing.T, h *Handler, usuarioID uint, puntos int) *httptest.ResponseRecorder {
	t.Helper()
	router := mux.NewRouter()
	router.HandleFunc("/api/clientes/{usuarioId}/canjes", h.Canjear).Methods(http.MethodPost)

	body, _ := json.Marshal(map[string]int{"puntos": puntos})
	req := httptest.NewRequest(http.MethodPost,
		"/api/clientes/"+strconv.FormatUint(uint64(usuarioID), 10)+"/canjes",
		bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCanjearDescuentaYRegistra(t *testing.T) {
	db := abrirDB(t)
	h := NewHandler(db)

	cliente := &usuario.Usuario{Nombre: "Marta", Email: "marta@mail.com", Rol: "cliente", PuntosAcumulados: 50}
	require.NoError(t, db.Create(cliente).Error)
	require.NoError(t, db.Create(&Premio{Nombre: "Corte gratis", PuntosRequeridos: 30}).Error)

	rec := canjearVia(t, h, cliente.ID, 30)
	require.Equal(t, http.StatusOK, rec.Code)

	var u usuario.Usuario
	require.NoError(t, db.First(&u, cliente.ID).Error)
	require.Equal(t, 20, u.PuntosAcumulados)

	canjes, err := h.Repository.ListarCanjesPorUsuario(db, cliente.ID)
	require.NoError(t, err)
	require.Len(t, canjes, 1)
	require.Equal(t, "Corte gratis", canjes[0].PremioNombre)
	require.Equal(t, 30, canjes[0].PuntosUsados)
}

func TestCanjearSinPremioExactoUsaNombreGenerico(t *testing.T) {
	db := abrirDB(t)
	h := NewHandler(db)

	cliente := &usuario.Usuario{Nombre: "Marta", Email: "marta@mail.com", Rol: "cliente", PuntosAcumulados: 50}
	require.NoError(t, db.Create(cliente).Error)

	rec := canjearVia(t, h, cliente.ID, 25)
	require.Equal(t, http.StatusOK, rec.Code)

	canjes, err := h.Repository.ListarCanjesPorUsuario(db, cliente.ID)
	require.NoError(t, err)
	require.Len(t, canjes, 1)
	require.Equal(t, "Premio Especial", canjes[0].PremioNombre)
}

func TestCanjearSinSaldoSuficiente(t *testing.T) {
	db := abrirDB(t)
	h := NewHandler(db)

	cliente := &usuario.Usuario{Nombre: "Marta", Email: "marta@mail.com", Rol: "cliente", PuntosAcumulados: 10}
	require.NoError(t, db.Create(cliente).Error)

	rec := canjearVia(t, h, cliente.ID, 30)
	require.Equal(t, http.StatusConflict, rec.Code)

	var u usuario.Usuario
	require.NoError(t, db.First(&u, cliente.ID).Error)
	require.Equal(t, 10, u.PuntosAcumulados)

	canjes, err := h.Repository.ListarCanjesPorUsuario(db, cliente.ID)
	require.NoError(t, err)
	require.Empty(t, canjes)
}
