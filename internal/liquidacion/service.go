package liquidacion

import (
	"fmt"
	"sort"
	"time"

	"github.com/barbero1999/api-turnos/internal/empleado"
	"github.com/barbero1999/api-turnos/internal/intervalo"
	"github.com/barbero1999/api-turnos/internal/turno"
	"gorm.io/gorm"
)

// Service calcula las liquidaciones de comisiones sobre turnos completados.
// Todos los reportes son de solo lectura: se recalculan desde los turnos en
// cada consulta, nunca se persisten montos derivados.
type Service struct {
	Turnos    turno.Repository
	Empleados empleado.Repository
}

func NewService() *Service {
	return &Service{
		Turnos:    turno.NewRepository(),
		Empleados: empleado.NewRepository(),
	}
}

// Periodo delimita un rango de liquidación con ambos extremos incluidos.
type Periodo struct {
	Etiqueta string    `json:"etiqueta"`
	Desde    time.Time `json:"desde"`
	Hasta    time.Time `json:"hasta"`
}

// PeriodoQuincenal devuelve la quincena que contiene la fecha: del 1 al 15,
// o del 16 al último día del mes.
func PeriodoQuincenal(fecha time.Time) Periodo {
	anio, mes, dia := fecha.Date()
	if dia <= 15 {
		return Periodo{
			Etiqueta: fmt.Sprintf("1ra Quincena %s %d", nombreMes(mes), anio),
			Desde:    time.Date(anio, mes, 1, 0, 0, 0, 0, fecha.Location()),
			Hasta:    time.Date(anio, mes, 15, 23, 59, 59, 0, fecha.Location()),
		}
	}
	ultimoDia := time.Date(anio, mes+1, 0, 0, 0, 0, 0, fecha.Location()).Day()
	return Periodo{
		Etiqueta: fmt.Sprintf("2da Quincena %s %d", nombreMes(mes), anio),
		Desde:    time.Date(anio, mes, 16, 0, 0, 0, 0, fecha.Location()),
		Hasta:    time.Date(anio, mes, ultimoDia, 23, 59, 59, 0, fecha.Location()),
	}
}

var meses = [...]string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

func nombreMes(m time.Month) string {
	return meses[m-1]
}

// LineaLiquidacion es la comisión de un empleado en un período. El bruto es
// todo lo cobrado en sus turnos; la base comisionable descuenta los
// productos vendidos, que son margen del local y no del empleado.
type LineaLiquidacion struct {
	EmpleadoID         uint    `json:"empleadoId"`
	Nombre             string  `json:"nombre"`
	ComisionPorcentaje float64 `json:"comisionPorcentaje"`
	CantidadTurnos     int     `json:"cantidadTurnos"`
	Bruto              float64 `json:"bruto"`
	BaseComisionable   float64 `json:"baseComisionable"`
	APagar             float64 `json:"aPagar"`
	GananciaLocal      float64 `json:"gananciaLocal"`
}

// PorPeriodo liquida a cada empleado con actividad en el período. Los
// empleados sin turnos completados no aparecen en el reporte.
func (s *Service) PorPeriodo(db *gorm.DB, p Periodo) ([]LineaLiquidacion, error) {
	empleados, err := s.Empleados.ListarTodos(db)
	if err != nil {
		return nil, err
	}

	lineas := make([]LineaLiquidacion, 0, len(empleados))
	for _, e := range empleados {
		turnos, err := s.Turnos.ListarCompletadosPorEmpleadoEnRango(db, e.ID, p.Desde, p.Hasta)
		if err != nil {
			return nil, err
		}
		if len(turnos) == 0 {
			continue
		}

		linea := LineaLiquidacion{
			EmpleadoID:         e.ID,
			Nombre:             e.Nombre,
			ComisionPorcentaje: e.ComisionPorcentaje,
			CantidadTurnos:     len(turnos),
		}
		for _, t := range turnos {
			linea.Bruto += t.MontoTotal
			linea.BaseComisionable += t.MontoTotal - montoProductos(t.Adicionales)
		}
		linea.APagar = linea.BaseComisionable * e.ComisionPorcentaje / 100
		linea.GananciaLocal = linea.Bruto - linea.APagar
		lineas = append(lineas, linea)
	}

	sort.Slice(lineas, func(i, j int) bool { return lineas[i].APagar > lineas[j].APagar })
	return lineas, nil
}

func montoProductos(adicionales []turno.Adicional) float64 {
	var monto float64
	for _, a := range adicionales {
		if a.Tipo == turno.TipoProducto {
			monto += a.Precio
		}
	}
	return monto
}

// CeldaResumen acumula facturación de un empleado en una unidad de tiempo
// (un día del resumen semanal, una semana del mensual).
type CeldaResumen struct {
	Clave          string  `json:"clave"`
	EmpleadoID     uint    `json:"empleadoId"`
	Nombre         string  `json:"nombre"`
	CantidadTurnos int     `json:"cantidadTurnos"`
	Total          float64 `json:"total"`
}

// ResumenSemanal desglosa los últimos siete días por día y empleado.
func (s *Service) ResumenSemanal(db *gorm.DB, hasta time.Time) ([]CeldaResumen, error) {
	desde := hasta.AddDate(0, 0, -7)
	return s.resumen(db, desde, hasta, func(t turno.Turno) string {
		return t.FechaHora.Format(intervalo.FormatoFecha)
	})
}

// ResumenMensual desglosa el mes en curso por semana del mes (1 a 5) y
// empleado.
func (s *Service) ResumenMensual(db *gorm.DB, hasta time.Time) ([]CeldaResumen, error) {
	desde := time.Date(hasta.Year(), hasta.Month(), 1, 0, 0, 0, 0, hasta.Location())
	return s.resumen(db, desde, hasta, func(t turno.Turno) string {
		semana := (t.FechaHora.Day()-1)/7 + 1
		return fmt.Sprintf("Semana %d", semana)
	})
}

func (s *Service) resumen(db *gorm.DB, desde, hasta time.Time, clave func(turno.Turno) string) ([]CeldaResumen, error) {
	turnos, err := s.Turnos.ListarCompletadosEnRango(db, desde, hasta)
	if err != nil {
		return nil, err
	}
	empleados, err := s.Empleados.ListarTodos(db)
	if err != nil {
		return nil, err
	}
	nombres := make(map[uint]string, len(empleados))
	for _, e := range empleados {
		nombres[e.ID] = e.Nombre
	}

	type indice struct {
		clave      string
		empleadoID uint
	}
	celdas := make(map[indice]*CeldaResumen)
	for _, t := range turnos {
		idx := indice{clave: clave(t), empleadoID: t.EmpleadoID}
		c, ok := celdas[idx]
		if !ok {
			c = &CeldaResumen{Clave: idx.clave, EmpleadoID: t.EmpleadoID, Nombre: nombres[t.EmpleadoID]}
			celdas[idx] = c
		}
		c.CantidadTurnos++
		c.Total += t.MontoTotal
	}

	lista := make([]CeldaResumen, 0, len(celdas))
	for _, c := range celdas {
		lista = append(lista, *c)
	}
	sort.Slice(lista, func(i, j int) bool {
		if lista[i].Clave != lista[j].Clave {
			return lista[i].Clave < lista[j].Clave
		}
		return lista[i].EmpleadoID < lista[j].EmpleadoID
	})
	return lista, nil
}

// SemanaHistorial agrupa la producción de un empleado en una semana ISO.
type SemanaHistorial struct {
	Anio             int     `json:"anio"`
	Semana           int     `json:"semana"`
	CantidadTurnos   int     `json:"cantidadTurnos"`
	BaseComisionable float64 `json:"baseComisionable"`
	Comision         float64 `json:"comision"`
}

// HistorialEmpleado arma los últimos 90 días de producción del empleado,
// agrupados por semana ISO. La base comisionable sigue el mismo criterio de
// la liquidación: servicio base más adicionales de servicio, sin productos.
func (s *Service) HistorialEmpleado(db *gorm.DB, empleadoID uint, hasta time.Time) ([]SemanaHistorial, error) {
	e, err := s.Empleados.BuscarPorID(db, empleadoID)
	if err != nil {
		return nil, err
	}

	desde := hasta.AddDate(0, 0, -90)
	turnos, err := s.Turnos.ListarCompletadosPorEmpleadoEnRango(db, empleadoID, desde, hasta)
	if err != nil {
		return nil, err
	}

	type claveSemana struct {
		anio, semana int
	}
	semanas := make(map[claveSemana]*SemanaHistorial)
	for _, t := range turnos {
		anio, semana := t.FechaHora.ISOWeek()
		k := claveSemana{anio, semana}
		sh, ok := semanas[k]
		if !ok {
			sh = &SemanaHistorial{Anio: anio, Semana: semana}
			semanas[k] = sh
		}
		base := t.MontoTotal - montoProductos(t.Adicionales)
		sh.CantidadTurnos++
		sh.BaseComisionable += base
		sh.Comision += base * e.ComisionPorcentaje / 100
	}

	lista := make([]SemanaHistorial, 0, len(semanas))
	for _, sh := range semanas {
		lista = append(lista, *sh)
	}
	sort.Slice(lista, func(i, j int) bool {
		if lista[i].Anio != lista[j].Anio {
			return lista[i].Anio > lista[j].Anio
		}
		return lista[i].Semana > lista[j].Semana
	})
	return lista, nil
}
