package producto

import (
	"gorm.io/gorm"
)

type Repository interface {
	Guardar(db *gorm.DB, p *Producto) error
	BuscarPorID(db *gorm.DB, id uint) (*Producto, error)
	ListarTodos(db *gorm.DB) ([]Producto, error)
	ListarConStock(db *gorm.DB) ([]Producto, error)
	Actualizar(db *gorm.DB, id uint, nuevosDatos *Producto) error
	DescontarStock(db *gorm.DB, id uint) error
	Eliminar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Guardar(db *gorm.DB, p *Producto) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Producto, error) {
	var p Producto
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Producto, error) {
	var lista []Producto
	err := db.Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ListarConStock(db *gorm.DB) ([]Producto, error) {
	var lista []Producto
	err := db.Where("stock > 0").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) Actualizar(db *gorm.DB, id uint, nuevosDatos *Producto) error {
	var existente Producto
	if err := db.First(&existente, id).Error; err != nil {
		return err
	}

	existente.Nombre = nuevosDatos.Nombre
	existente.Precio = nuevosDatos.Precio
	existente.Stock = nuevosDatos.Stock
	existente.Unidad = nuevosDatos.Unidad

	return db.Save(&existente).Error
}

// DescontarStock resta una unidad. No frena en cero: dos cierres
// concurrentes sobre la última unidad pueden dejar stock negativo, igual
// que el sistema siempre lo hizo; el inventario se corrige a mano.
func (r *repositoryImpl) DescontarStock(db *gorm.DB, id uint) error {
	return db.Model(&Producto{}).Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock - ?", 1)).Error
}

func (r *repositoryImpl) Eliminar(db *gorm.DB, id uint) error {
	return db.Delete(&Producto{}, id).Error
}
