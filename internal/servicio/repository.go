package servicio

import (
	"gorm.io/gorm"
)

type Repository interface {
	Guardar(db *gorm.DB, s *Servicio) error
	BuscarPorID(db *gorm.DB, id uint) (*Servicio, error)
	ListarTodos(db *gorm.DB) ([]Servicio, error)
	Actualizar(db *gorm.DB, id uint, nuevosDatos *Servicio) error
	Eliminar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Guardar(db *gorm.DB, s *Servicio) error {
	return db.Save(s).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Servicio, error) {
	var s Servicio
	if err := db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Servicio, error) {
	var lista []Servicio
	err := db.Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) Actualizar(db *gorm.DB, id uint, nuevosDatos *Servicio) error {
	var existente Servicio
	if err := db.First(&existente, id).Error; err != nil {
		return err
	}

	existente.Nombre = nuevosDatos.Nombre
	existente.Precio = nuevosDatos.Precio
	existente.DuracionMinutos = nuevosDatos.DuracionMinutos

	return db.Save(&existente).Error
}

func (r *repositoryImpl) Eliminar(db *gorm.DB, id uint) error {
	return db.Delete(&Servicio{}, id).Error
}
