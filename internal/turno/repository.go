package turno

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Guardar(db *gorm.DB, t *Turno) error
	BuscarPorID(db *gorm.DB, id uint) (*Turno, error)
	ListarPorCliente(db *gorm.DB, clienteID uint) ([]Turno, error)
	ListarPorFecha(db *gorm.DB, fecha time.Time) ([]Turno, error)
	ListarActivosPorEmpleadoYFecha(db *gorm.DB, empleadoID uint, fecha time.Time, excluirID uint) ([]Turno, error)
	ListarDelDiaPorEmpleado(db *gorm.DB, empleadoID uint, fecha time.Time) ([]Turno, error)
	ListarCompletadosEnRango(db *gorm.DB, desde, hasta time.Time) ([]Turno, error)
	ListarCompletadosPorEmpleadoEnRango(db *gorm.DB, empleadoID uint, desde, hasta time.Time) ([]Turno, error)

	ListarAdicionales(db *gorm.DB, turnoID uint) ([]Adicional, error)
	CrearAdicional(db *gorm.DB, a *Adicional) error
	EliminarAdicionales(db *gorm.DB, turnoID uint) error

	CrearVenta(db *gorm.DB, v *Venta) error
	ListarVentasPorTurno(db *gorm.DB, turnoID uint) ([]Venta, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Guardar(db *gorm.DB, t *Turno) error {
	return db.Save(t).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Turno, error) {
	var t Turno
	if err := db.Preload("Adicionales").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repositoryImpl) ListarPorCliente(db *gorm.DB, clienteID uint) ([]Turno, error) {
	var lista []Turno
	err := db.Where("cliente_id = ?", clienteID).
		Order("fecha_hora desc").
		Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ListarPorFecha(db *gorm.DB, fecha time.Time) ([]Turno, error) {
	inicio, fin := limitesDelDia(fecha)
	var lista []Turno
	err := db.Where("fecha_hora >= ? AND fecha_hora < ?", inicio, fin).
		Order("fecha_hora asc").
		Find(&lista).Error
	return lista, err
}

// ListarActivosPorEmpleadoYFecha trae los turnos no cancelados del empleado
// en ese día. excluirID deja afuera el turno que se está reprogramando para
// que no choque contra su propio horario anterior.
func (r *repositoryImpl) ListarActivosPorEmpleadoYFecha(db *gorm.DB, empleadoID uint, fecha time.Time, excluirID uint) ([]Turno, error) {
	inicio, fin := limitesDelDia(fecha)
	q := db.Where("empleado_id = ? AND estado <> ? AND fecha_hora >= ? AND fecha_hora < ?",
		empleadoID, EstadoCancelado, inicio, fin)
	if excluirID != 0 {
		q = q.Where("id <> ?", excluirID)
	}

	var lista []Turno
	err := q.Order("fecha_hora asc").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ListarDelDiaPorEmpleado(db *gorm.DB, empleadoID uint, fecha time.Time) ([]Turno, error) {
	inicio, fin := limitesDelDia(fecha)
	var lista []Turno
	err := db.Where("empleado_id = ? AND fecha_hora >= ? AND fecha_hora < ? AND estado IN ?",
		empleadoID, inicio, fin, []string{EstadoPendiente, EstadoCompletado}).
		Order("fecha_hora asc").
		Find(&lista).Error
	return lista, err
}

// ListarCompletadosEnRango filtra por estado completado con ambos extremos
// incluidos, como exige la liquidación.
func (r *repositoryImpl) ListarCompletadosEnRango(db *gorm.DB, desde, hasta time.Time) ([]Turno, error) {
	var lista []Turno
	err := db.Preload("Adicionales").
		Where("estado = ? AND fecha_hora >= ? AND fecha_hora <= ?", EstadoCompletado, desde, hasta).
		Order("fecha_hora asc").
		Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ListarCompletadosPorEmpleadoEnRango(db *gorm.DB, empleadoID uint, desde, hasta time.Time) ([]Turno, error) {
	var lista []Turno
	err := db.Preload("Adicionales").
		Where("empleado_id = ? AND estado = ? AND fecha_hora >= ? AND fecha_hora <= ?",
			empleadoID, EstadoCompletado, desde, hasta).
		Order("fecha_hora desc").
		Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ListarAdicionales(db *gorm.DB, turnoID uint) ([]Adicional, error) {
	var lista []Adicional
	err := db.Where("turno_id = ?", turnoID).Order("id asc").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) CrearAdicional(db *gorm.DB, a *Adicional) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) EliminarAdicionales(db *gorm.DB, turnoID uint) error {
	return db.Where("turno_id = ?", turnoID).Delete(&Adicional{}).Error
}

func (r *repositoryImpl) CrearVenta(db *gorm.DB, v *Venta) error {
	return db.Create(v).Error
}

func (r *repositoryImpl) ListarVentasPorTurno(db *gorm.DB, turnoID uint) ([]Venta, error) {
	var lista []Venta
	err := db.Where("turno_id = ?", turnoID).Find(&lista).Error
	return lista, err
}

func limitesDelDia(fecha time.Time) (time.Time, time.Time) {
	inicio := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), 0, 0, 0, 0, fecha.Location())
	return inicio, inicio.AddDate(0, 0, 1)
}
