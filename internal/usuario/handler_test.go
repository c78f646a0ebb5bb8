package usuario

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/barbero1999/api-turnos/internal/auth"
	"github.com/barbero1999/api-turnos/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func abrirDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Conectar(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func postJSON(t *testing.T, h http.HandlerFunc, ruta string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, ruta, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegistroYLogin(t *testing.T) {
	auth.Configurar("secreto-de-test")
	db := abrirDB(t)
	h := NewHandler(db)

	rec := postJSON(t, h.Registro, "/api/registro", map[string]string{
		"nombre":   "Marta",
		"email":    "Marta@Mail.com",
		"password": "Segura123!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var creado Usuario
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&creado))
	require.Equal(t, auth.RolCliente, creado.Rol)
	require.Empty(t, creado.Password, "el hash nunca viaja en la respuesta")

	// el email se normaliza a minúsculas
	rec = postJSON(t, h.Login, "/api/login", map[string]string{
		"email":    "marta@mail.com",
		"password": "Segura123!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp["token"])
	require.Equal(t, auth.RolCliente, resp["rol"])
}

func TestRegistroRechazaClaveDebil(t *testing.T) {
	db := abrirDB(t)
	h := NewHandler(db)

	for _, clave := range []string{"corta1!", "sinmayuscula123!", "SINMINUSCULA123!", "SinNumero!", "SinEspecial123"} {
		rec := postJSON(t, h.Registro, "/api/registro", map[string]string{
			"nombre":   "Marta",
			"email":    "marta@mail.com",
			"password": clave,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code, "clave %q", clave)
	}
}

func TestRegistroRechazaEmailDuplicado(t *testing.T) {
	db := abrirDB(t)
	h := NewHandler(db)

	payload := map[string]string{"nombre": "Marta", "email": "marta@mail.com", "password": "Segura123!"}
	require.Equal(t, http.StatusCreated, postJSON(t, h.Registro, "/api/registro", payload).Code)
	require.Equal(t, http.StatusConflict, postJSON(t, h.Registro, "/api/registro", payload).Code)
}

func TestLoginConClaveIncorrecta(t *testing.T) {
	auth.Configurar("secreto-de-test")
	db := abrirDB(t)
	h := NewHandler(db)

	payload := map[string]string{"nombre": "Marta", "email": "marta@mail.com", "password": "Segura123!"}
	require.Equal(t, http.StatusCreated, postJSON(t, h.Registro, "/api/registro", payload).Code)

	rec := postJSON(t, h.Login, "/api/login", map[string]string{
		"email":    "marta@mail.com",
		"password": "otra-clave",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
