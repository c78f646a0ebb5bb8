package bloqueo

import (
	"gorm.io/gorm"
)

type Repository interface {
	Guardar(db *gorm.DB, b *Bloqueo) error
	BuscarPorID(db *gorm.DB, id uint) (*Bloqueo, error)
	ListarPorEmpleadoYFecha(db *gorm.DB, empleadoID uint, fecha string) ([]Bloqueo, error)
	ListarPorEmpleado(db *gorm.DB, empleadoID uint) ([]Bloqueo, error)
	ListarTodos(db *gorm.DB) ([]Bloqueo, error)
	Eliminar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Guardar(db *gorm.DB, b *Bloqueo) error {
	return db.Save(b).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Bloqueo, error) {
	var b Bloqueo
	if err := db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repositoryImpl) ListarPorEmpleadoYFecha(db *gorm.DB, empleadoID uint, fecha string) ([]Bloqueo, error) {
	var lista []Bloqueo
	err := db.Where("empleado_id = ? AND fecha = ?", empleadoID, fecha).Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ListarPorEmpleado(db *gorm.DB, empleadoID uint) ([]Bloqueo, error) {
	var lista []Bloqueo
	err := db.Where("empleado_id = ?", empleadoID).Order("fecha asc").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Bloqueo, error) {
	var lista []Bloqueo
	err := db.Order("fecha asc").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) Eliminar(db *gorm.DB, id uint) error {
	return db.Delete(&Bloqueo{}, id).Error
}
