package cierre

import (
	"testing"
	"time"

	"github.com/barbero1999/api-turnos/internal/database"
	"github.com/barbero1999/api-turnos/internal/producto"
	"github.com/barbero1999/api-turnos/internal/puntos"
	"github.com/barbero1999/api-turnos/internal/servicio"
	"github.com/barbero1999/api-turnos/internal/turno"
	"github.com/barbero1999/api-turnos/internal/usuario"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func abrirDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Conectar(":memory:")
	require.NoError(t, err)
	require.NoError(t, usuario.Migrate(db))
	require.NoError(t, servicio.Migrate(db))
	require.NoError(t, producto.Migrate(db))
	require.NoError(t, turno.Migrate(db))
	require.NoError(t, puntos.Migrate(db))
	return db
}

type escenario struct {
	db        *gorm.DB
	svc       *Service
	cliente   *usuario.Usuario
	corte     *servicio.Servicio
	cera      *producto.Producto
	pendiente *turno.Turno
}

func armarEscenario(t *testing.T, precioServicio float64, stock int) *escenario {
	t.Helper()
	db := abrirDB(t)

	cliente := &usuario.Usuario{Nombre: "Marta", Email: "marta@mail.com", Rol: "cliente"}
	require.NoError(t, db.Create(cliente).Error)

	corte := &servicio.Servicio{Nombre: "Corte", Precio: precioServicio, DuracionMinutos: 30}
	require.NoError(t, db.Create(corte).Error)

	cera := &producto.Producto{Nombre: "Cera", Precio: 2000, Stock: stock, Unidad: "uds"}
	require.NoError(t, db.Create(cera).Error)

	pendiente := &turno.Turno{
		NombreCliente: cliente.Nombre,
		FechaHora:     time.Now().Add(time.Hour),
		Estado:        turno.EstadoPendiente,
		ClienteID:     cliente.ID,
		EmpleadoID:    1,
		ServicioID:    &corte.ID,
	}
	require.NoError(t, db.Create(pendiente).Error)

	return &escenario{db: db, svc: NewService(), cliente: cliente, corte: corte, cera: cera, pendiente: pendiente}
}

func puntosDe(t *testing.T, db *gorm.DB, usuarioID uint) int {
	t.Helper()
	var u usuario.Usuario
	require.NoError(t, db.First(&u, usuarioID).Error)
	return u.PuntosAcumulados
}

func stockDe(t *testing.T, db *gorm.DB, productoID uint) int {
	t.Helper()
	var p producto.Producto
	require.NoError(t, db.First(&p, productoID).Error)
	return p.Stock
}

func TestCompletarCongelaTotalYAcreditaPuntos(t *testing.T) {
	e := armarEscenario(t, 10000, 0)
	require.NoError(t, e.db.Create(&puntos.ReglaPuntos{RangoMin: 0, RangoMax: 20000, Puntos: 5}).Error)

	res, err := e.svc.CompletarTurno(e.db, e.pendiente.ID, 0)
	require.NoError(t, err)
	require.Equal(t, turno.EstadoCompletado, res.Turno.Estado)
	require.Equal(t, 10000.0, res.Turno.MontoTotal)
	require.Equal(t, 5, res.PuntosOtorgados)
	require.Equal(t, 5, puntosDe(t, e.db, e.cliente.ID))

	// que el precio del catálogo cambie después no reescribe el total cobrado
	require.NoError(t, e.db.Model(e.corte).Update("precio", 99999).Error)
	var guardado turno.Turno
	require.NoError(t, e.db.First(&guardado, e.pendiente.ID).Error)
	require.Equal(t, 10000.0, guardado.MontoTotal)
}

func TestCompletarEsIdempotente(t *testing.T) {
	e := armarEscenario(t, 10000, 3)
	require.NoError(t, e.db.Create(&puntos.ReglaPuntos{RangoMin: 0, RangoMax: 20000, Puntos: 5}).Error)

	_, err := e.svc.CompletarTurno(e.db, e.pendiente.ID, e.cera.ID)
	require.NoError(t, err)

	res, err := e.svc.CompletarTurno(e.db, e.pendiente.ID, e.cera.ID)
	require.NoError(t, err)
	require.True(t, res.YaEstabaCerrado)
	require.Zero(t, res.PuntosOtorgados)

	// ni puntos dobles, ni segundo descuento de stock
	require.Equal(t, 5, puntosDe(t, e.db, e.cliente.ID))
	require.Equal(t, 2, stockDe(t, e.db, e.cera.ID))
}

func TestCompletarConProductoExtra(t *testing.T) {
	e := armarEscenario(t, 10000, 2)

	res, err := e.svc.CompletarTurno(e.db, e.pendiente.ID, e.cera.ID)
	require.NoError(t, err)
	require.Equal(t, 12000.0, res.Turno.MontoTotal)
	require.Equal(t, 1, stockDe(t, e.db, e.cera.ID))

	ventas, err := e.svc.Turnos.ListarVentasPorTurno(e.db, e.pendiente.ID)
	require.NoError(t, err)
	require.Len(t, ventas, 1)
	require.Equal(t, e.cera.ID, ventas[0].ProductoID)
}

func TestCompletarIgnoraProductoSinStock(t *testing.T) {
	e := armarEscenario(t, 10000, 0)

	res, err := e.svc.CompletarTurno(e.db, e.pendiente.ID, e.cera.ID)
	require.NoError(t, err)
	require.Equal(t, 10000.0, res.Turno.MontoTotal)
	require.Empty(t, res.Turno.Adicionales)
	require.Equal(t, 0, stockDe(t, e.db, e.cera.ID))
}

func TestCompletarTurnoCanceladoFalla(t *testing.T) {
	e := armarEscenario(t, 10000, 0)
	require.NoError(t, e.db.Model(e.pendiente).Update("estado", turno.EstadoCancelado).Error)

	_, err := e.svc.CompletarTurno(e.db, e.pendiente.ID, 0)
	require.ErrorIs(t, err, ErrTurnoCancelado)
}

func TestReglaDePuntosRespetaBordes(t *testing.T) {
	casos := []struct {
		precio float64
		puntos int
	}{
		{20000, 5},  // borde superior incluido
		{20001, 15}, // primer monto del rango siguiente
		{0, 5},      // borde inferior incluido
	}
	for _, c := range casos {
		e := armarEscenario(t, c.precio, 0)
		require.NoError(t, e.db.Create(&puntos.ReglaPuntos{RangoMin: 0, RangoMax: 20000, Puntos: 5}).Error)
		require.NoError(t, e.db.Create(&puntos.ReglaPuntos{RangoMin: 20001, RangoMax: 50000, Puntos: 15}).Error)

		res, err := e.svc.CompletarTurno(e.db, e.pendiente.ID, 0)
		require.NoError(t, err)
		require.Equal(t, c.puntos, res.PuntosOtorgados, "precio %v", c.precio)
	}
}

func TestCompletarSinReglaNoAcreditaNada(t *testing.T) {
	e := armarEscenario(t, 10000, 0)

	res, err := e.svc.CompletarTurno(e.db, e.pendiente.ID, 0)
	require.NoError(t, err)
	require.Zero(t, res.PuntosOtorgados)
	require.Zero(t, puntosDe(t, e.db, e.cliente.ID))
}

func TestAgregarAdicionalProductoDescuentaStock(t *testing.T) {
	e := armarEscenario(t, 10000, 2)

	actualizado, err := e.svc.AgregarAdicional(e.db, e.pendiente.ID, ItemAdicional{Tipo: turno.TipoProducto, ItemID: e.cera.ID})
	require.NoError(t, err)
	require.Equal(t, 12000.0, actualizado.MontoTotal)
	require.Len(t, actualizado.Adicionales, 1)
	require.Equal(t, 1, stockDe(t, e.db, e.cera.ID))
}

func TestAgregarAdicionalSinStockFalla(t *testing.T) {
	e := armarEscenario(t, 10000, 0)

	_, err := e.svc.AgregarAdicional(e.db, e.pendiente.ID, ItemAdicional{Tipo: turno.TipoProducto, ItemID: e.cera.ID})
	require.ErrorIs(t, err, ErrSinStock)
	require.Equal(t, 0, stockDe(t, e.db, e.cera.ID))
}

func TestAgregarAdicionalTipoInvalido(t *testing.T) {
	e := armarEscenario(t, 10000, 1)

	_, err := e.svc.AgregarAdicional(e.db, e.pendiente.ID, ItemAdicional{Tipo: "propina", ItemID: 1})
	require.ErrorIs(t, err, ErrTipoInvalido)
}

func TestReemplazarAdicionalesRecalculaElTotal(t *testing.T) {
	e := armarEscenario(t, 10000, 5)
	barba := &servicio.Servicio{Nombre: "Barba", Precio: 4000, DuracionMinutos: 15}
	require.NoError(t, e.db.Create(barba).Error)

	actualizado, err := e.svc.ReemplazarAdicionales(e.db, e.pendiente.ID, []ItemAdicional{
		{Tipo: turno.TipoServicio, ItemID: barba.ID},
		{Tipo: turno.TipoProducto, ItemID: e.cera.ID},
	})
	require.NoError(t, err)
	require.Equal(t, 16000.0, actualizado.MontoTotal)
	require.Len(t, actualizado.Adicionales, 2)

	// lista vacía deja solo el servicio base
	actualizado, err = e.svc.ReemplazarAdicionales(e.db, e.pendiente.ID, nil)
	require.NoError(t, err)
	require.Equal(t, 10000.0, actualizado.MontoTotal)
	require.Empty(t, actualizado.Adicionales)
}

func TestAdicionalCongelaNombreYPrecio(t *testing.T) {
	e := armarEscenario(t, 10000, 5)

	actualizado, err := e.svc.AgregarAdicional(e.db, e.pendiente.ID, ItemAdicional{Tipo: turno.TipoProducto, ItemID: e.cera.ID})
	require.NoError(t, err)

	require.NoError(t, e.db.Model(e.cera).Updates(map[string]any{"nombre": "Cera premium", "precio": 9000}).Error)

	adicionales, err := e.svc.Turnos.ListarAdicionales(e.db, actualizado.ID)
	require.NoError(t, err)
	require.Equal(t, "Cera", adicionales[0].Nombre)
	require.Equal(t, 2000.0, adicionales[0].Precio)
}
