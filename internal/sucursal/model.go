package sucursal

import "gorm.io/gorm"

// Sucursal es un local del negocio al que pueden afiliarse empleados.
type Sucursal struct {
	gorm.Model
	Nombre    string `json:"nombre" gorm:"not null"`
	Direccion string `json:"direccion" gorm:"not null"`
}

// Migrate crea la tabla en la base de datos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Sucursal{})
}
