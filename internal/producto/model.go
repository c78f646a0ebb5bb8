package producto

import "gorm.io/gorm"

// Producto es un ítem del inventario vendible como adicional de un turno.
type Producto struct {
	gorm.Model
	Nombre string  `json:"nombre" gorm:"not null"`
	Precio float64 `json:"precio" gorm:"not null"`
	Stock  int     `json:"stock" gorm:"not null;default:0"`
	Unidad string  `json:"unidad" gorm:"size:20"`
}

// Migrate crea la tabla en la base de datos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Producto{})
}
