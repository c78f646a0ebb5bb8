package puntos

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	GuardarRegla(db *gorm.DB, regla *ReglaPuntos) error
	ListarReglas(db *gorm.DB) ([]ReglaPuntos, error)
	BuscarReglaPorMonto(db *gorm.DB, monto float64) (*ReglaPuntos, error)
	EliminarRegla(db *gorm.DB, id uint) error

	GuardarPremio(db *gorm.DB, p *Premio) error
	ListarPremios(db *gorm.DB) ([]Premio, error)
	BuscarPremioPorPuntos(db *gorm.DB, puntos int) (*Premio, error)
	EliminarPremio(db *gorm.DB, id uint) error

	RegistrarCanje(db *gorm.DB, c *Canje) error
	ListarCanjesPorUsuario(db *gorm.DB, usuarioID uint) ([]Canje, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) GuardarRegla(db *gorm.DB, regla *ReglaPuntos) error {
	return db.Save(regla).Error
}

func (r *repositoryImpl) ListarReglas(db *gorm.DB) ([]ReglaPuntos, error) {
	var lista []ReglaPuntos
	err := db.Order("rango_min asc").Find(&lista).Error
	return lista, err
}

// BuscarReglaPorMonto devuelve la primera regla cuyo rango contiene el
// monto, con ambos extremos incluidos. El orden por id hace estable el
// desempate si hay rangos solapados.
func (r *repositoryImpl) BuscarReglaPorMonto(db *gorm.DB, monto float64) (*ReglaPuntos, error) {
	var regla ReglaPuntos
	err := db.Where("rango_min <= ? AND rango_max >= ?", monto, monto).
		Order("id asc").
		First(&regla).Error
	if err != nil {
		return nil, err
	}
	return &regla, nil
}

func (r *repositoryImpl) EliminarRegla(db *gorm.DB, id uint) error {
	return db.Delete(&ReglaPuntos{}, id).Error
}

func (r *repositoryImpl) GuardarPremio(db *gorm.DB, p *Premio) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) ListarPremios(db *gorm.DB) ([]Premio, error) {
	var lista []Premio
	err := db.Order("puntos_requeridos asc").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) BuscarPremioPorPuntos(db *gorm.DB, puntos int) (*Premio, error) {
	var p Premio
	if err := db.Where("puntos_requeridos = ?", puntos).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) EliminarPremio(db *gorm.DB, id uint) error {
	return db.Delete(&Premio{}, id).Error
}

func (r *repositoryImpl) RegistrarCanje(db *gorm.DB, c *Canje) error {
	if c.Fecha.IsZero() {
		c.Fecha = time.Now()
	}
	return db.Create(c).Error
}

func (r *repositoryImpl) ListarCanjesPorUsuario(db *gorm.DB, usuarioID uint) ([]Canje, error) {
	var lista []Canje
	err := db.Where("usuario_id = ?", usuarioID).Order("fecha desc").Find(&lista).Error
	return lista, err
}
