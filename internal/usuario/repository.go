package usuario

import (
	"gorm.io/gorm"
)

type Repository interface {
	Guardar(db *gorm.DB, u *Usuario) error
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	BuscarClientes(db *gorm.DB, q string) ([]Usuario, error)
	SumarPuntos(db *gorm.DB, id uint, puntos int) error
	RestarPuntos(db *gorm.DB, id uint, puntos int) error
	Eliminar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Guardar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	if err := db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// BuscarClientes filtra por nombre o email, solo rol cliente.
func (r *repositoryImpl) BuscarClientes(db *gorm.DB, q string) ([]Usuario, error) {
	var lista []Usuario
	patron := "%" + q + "%"
	err := db.Where("rol = ?", "cliente").
		Where(db.Where("nombre LIKE ?", patron).Or("email LIKE ?", patron)).
		Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) SumarPuntos(db *gorm.DB, id uint, puntos int) error {
	return db.Model(&Usuario{}).Where("id = ?", id).
		UpdateColumn("puntos_acumulados", gorm.Expr("puntos_acumulados + ?", puntos)).Error
}

func (r *repositoryImpl) RestarPuntos(db *gorm.DB, id uint, puntos int) error {
	return db.Model(&Usuario{}).Where("id = ?", id).
		UpdateColumn("puntos_acumulados", gorm.Expr("puntos_acumulados - ?", puntos)).Error
}

func (r *repositoryImpl) Eliminar(db *gorm.DB, id uint) error {
	return db.Delete(&Usuario{}, id).Error
}
