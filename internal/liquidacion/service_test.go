package liquidacion

import (
	"testing"
	"time"

	"github.com/barbero1999/api-turnos/internal/database"
	"github.com/barbero1999/api-turnos/internal/empleado"
	"github.com/barbero1999/api-turnos/internal/turno"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func abrirDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Conectar(":memory:")
	require.NoError(t, err)
	require.NoError(t, empleado.Migrate(db))
	require.NoError(t, turno.Migrate(db))
	return db
}

func crearEmpleado(t *testing.T, db *gorm.DB, nombre string, comision float64) *empleado.Empleado {
	t.Helper()
	e := &empleado.Empleado{Nombre: nombre, Especialidad: "Barbero", ComisionPorcentaje: comision, UsuarioID: 1}
	require.NoError(t, db.Create(e).Error)
	return e
}

func crearCompletado(t *testing.T, db *gorm.DB, empleadoID uint, fechaHora time.Time, total float64, adicionales ...turno.Adicional) *turno.Turno {
	t.Helper()
	tr := &turno.Turno{
		NombreCliente: "Cliente",
		FechaHora:     fechaHora,
		Estado:        turno.EstadoCompletado,
		ClienteID:     1,
		EmpleadoID:    empleadoID,
		MontoTotal:    total,
	}
	require.NoError(t, db.Create(tr).Error)
	for i := range adicionales {
		adicionales[i].TurnoID = tr.ID
		require.NoError(t, db.Create(&adicionales[i]).Error)
	}
	return tr
}

func TestPeriodoQuincenal(t *testing.T) {
	loc := time.Local

	p := PeriodoQuincenal(time.Date(2026, time.August, 10, 12, 0, 0, 0, loc))
	require.Equal(t, "1ra Quincena Agosto 2026", p.Etiqueta)
	require.Equal(t, 1, p.Desde.Day())
	require.Equal(t, 15, p.Hasta.Day())

	p = PeriodoQuincenal(time.Date(2026, time.February, 16, 0, 0, 0, 0, loc))
	require.Equal(t, "2da Quincena Febrero 2026", p.Etiqueta)
	require.Equal(t, 16, p.Desde.Day())
	require.Equal(t, 28, p.Hasta.Day())

	// el día 15 todavía pertenece a la primera quincena
	p = PeriodoQuincenal(time.Date(2026, time.July, 15, 23, 0, 0, 0, loc))
	require.Equal(t, "1ra Quincena Julio 2026", p.Etiqueta)
}

func TestPorPeriodoDescuentaProductosDeLaBase(t *testing.T) {
	db := abrirDB(t)
	e := crearEmpleado(t, db, "Nico", 70)

	fecha := time.Date(2026, time.August, 5, 10, 0, 0, 0, time.Local)
	// 10000 de servicio + 2000 de producto: el producto no comisiona
	crearCompletado(t, db, e.ID, fecha, 12000,
		turno.Adicional{Tipo: turno.TipoProducto, Nombre: "Cera", Precio: 2000})

	svc := NewService()
	lineas, err := svc.PorPeriodo(db, PeriodoQuincenal(fecha))
	require.NoError(t, err)
	require.Len(t, lineas, 1)
	require.Equal(t, 12000.0, lineas[0].Bruto)
	require.Equal(t, 10000.0, lineas[0].BaseComisionable)
	require.Equal(t, 7000.0, lineas[0].APagar)
	require.Equal(t, 5000.0, lineas[0].GananciaLocal)
	require.Equal(t, 1, lineas[0].CantidadTurnos)
}

func TestPorPeriodoOmiteEmpleadosSinActividad(t *testing.T) {
	db := abrirDB(t)
	activo := crearEmpleado(t, db, "Nico", 70)
	crearEmpleado(t, db, "Vago", 70)

	fecha := time.Date(2026, time.August, 5, 10, 0, 0, 0, time.Local)
	crearCompletado(t, db, activo.ID, fecha, 8000)

	// los cancelados y pendientes tampoco cuentan
	pendiente := &turno.Turno{NombreCliente: "x", FechaHora: fecha, Estado: turno.EstadoPendiente, ClienteID: 1, EmpleadoID: activo.ID, MontoTotal: 5000}
	require.NoError(t, db.Create(pendiente).Error)

	svc := NewService()
	lineas, err := svc.PorPeriodo(db, PeriodoQuincenal(fecha))
	require.NoError(t, err)
	require.Len(t, lineas, 1)
	require.Equal(t, activo.ID, lineas[0].EmpleadoID)
	require.Equal(t, 8000.0, lineas[0].Bruto)
}

func TestPorPeriodoIncluyeAmbosExtremos(t *testing.T) {
	db := abrirDB(t)
	e := crearEmpleado(t, db, "Nico", 50)

	loc := time.Local
	crearCompletado(t, db, e.ID, time.Date(2026, time.August, 1, 0, 0, 0, 0, loc), 1000)
	crearCompletado(t, db, e.ID, time.Date(2026, time.August, 15, 23, 30, 0, 0, loc), 2000)
	// día 16 ya es de la segunda quincena
	crearCompletado(t, db, e.ID, time.Date(2026, time.August, 16, 9, 0, 0, 0, loc), 4000)

	svc := NewService()
	lineas, err := svc.PorPeriodo(db, PeriodoQuincenal(time.Date(2026, time.August, 10, 0, 0, 0, 0, loc)))
	require.NoError(t, err)
	require.Len(t, lineas, 1)
	require.Equal(t, 3000.0, lineas[0].Bruto)
	require.Equal(t, 2, lineas[0].CantidadTurnos)
}

func TestResumenSemanalAgrupaPorDia(t *testing.T) {
	db := abrirDB(t)
	e := crearEmpleado(t, db, "Nico", 70)

	hoy := time.Date(2026, time.August, 20, 18, 0, 0, 0, time.Local)
	crearCompletado(t, db, e.ID, hoy.AddDate(0, 0, -1), 3000)
	crearCompletado(t, db, e.ID, hoy.AddDate(0, 0, -1).Add(time.Hour), 2000)
	crearCompletado(t, db, e.ID, hoy.AddDate(0, 0, -3), 5000)
	// fuera de la ventana de siete días
	crearCompletado(t, db, e.ID, hoy.AddDate(0, 0, -10), 9000)

	svc := NewService()
	celdas, err := svc.ResumenSemanal(db, hoy)
	require.NoError(t, err)
	require.Len(t, celdas, 2)
	require.Equal(t, "2026-08-17", celdas[0].Clave)
	require.Equal(t, 5000.0, celdas[0].Total)
	require.Equal(t, "2026-08-19", celdas[1].Clave)
	require.Equal(t, 5000.0, celdas[1].Total)
	require.Equal(t, 2, celdas[1].CantidadTurnos)
}

func TestResumenMensualAgrupaPorSemanaDelMes(t *testing.T) {
	db := abrirDB(t)
	e := crearEmpleado(t, db, "Nico", 70)

	hoy := time.Date(2026, time.August, 20, 18, 0, 0, 0, time.Local)
	crearCompletado(t, db, e.ID, time.Date(2026, time.August, 3, 10, 0, 0, 0, time.Local), 3000)  // semana 1
	crearCompletado(t, db, e.ID, time.Date(2026, time.August, 8, 10, 0, 0, 0, time.Local), 4000)  // semana 2
	crearCompletado(t, db, e.ID, time.Date(2026, time.August, 14, 10, 0, 0, 0, time.Local), 1000) // semana 2
	// julio queda afuera
	crearCompletado(t, db, e.ID, time.Date(2026, time.July, 30, 10, 0, 0, 0, time.Local), 8000)

	svc := NewService()
	celdas, err := svc.ResumenMensual(db, hoy)
	require.NoError(t, err)
	require.Len(t, celdas, 2)
	require.Equal(t, "Semana 1", celdas[0].Clave)
	require.Equal(t, 3000.0, celdas[0].Total)
	require.Equal(t, "Semana 2", celdas[1].Clave)
	require.Equal(t, 5000.0, celdas[1].Total)
}

func TestHistorialEmpleadoAgrupaPorSemanaISO(t *testing.T) {
	db := abrirDB(t)
	e := crearEmpleado(t, db, "Nico", 60)

	hoy := time.Date(2026, time.August, 20, 18, 0, 0, 0, time.Local)
	// lunes y miércoles de la misma semana ISO
	crearCompletado(t, db, e.ID, time.Date(2026, time.August, 17, 10, 0, 0, 0, time.Local), 5000)
	crearCompletado(t, db, e.ID, time.Date(2026, time.August, 19, 10, 0, 0, 0, time.Local), 5000,
		turno.Adicional{Tipo: turno.TipoProducto, Nombre: "Shampoo", Precio: 1000})
	// hace más de noventa días, fuera del historial
	crearCompletado(t, db, e.ID, hoy.AddDate(0, 0, -120), 9999)

	svc := NewService()
	semanas, err := svc.HistorialEmpleado(db, e.ID, hoy)
	require.NoError(t, err)
	require.Len(t, semanas, 1)
	require.Equal(t, 2, semanas[0].CantidadTurnos)
	// 5000 + (5000 − 1000 de producto) = 9000 comisionables al 60%
	require.Equal(t, 9000.0, semanas[0].BaseComisionable)
	require.Equal(t, 5400.0, semanas[0].Comision)
}
