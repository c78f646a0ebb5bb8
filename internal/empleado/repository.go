package empleado

import (
	"gorm.io/gorm"
)

type Repository interface {
	Guardar(db *gorm.DB, e *Empleado) error
	BuscarPorID(db *gorm.DB, id uint) (*Empleado, error)
	BuscarPorUsuario(db *gorm.DB, usuarioID uint) (*Empleado, error)
	ListarTodos(db *gorm.DB) ([]Empleado, error)
	Eliminar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Guardar(db *gorm.DB, e *Empleado) error {
	return db.Save(e).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Empleado, error) {
	var e Empleado
	if err := db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repositoryImpl) BuscarPorUsuario(db *gorm.DB, usuarioID uint) (*Empleado, error) {
	var e Empleado
	if err := db.Where("usuario_id = ?", usuarioID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Empleado, error) {
	var lista []Empleado
	err := db.Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) Eliminar(db *gorm.DB, id uint) error {
	return db.Delete(&Empleado{}, id).Error
}
