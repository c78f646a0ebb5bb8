package turno

import (
	"time"

	"gorm.io/gorm"
)

// Estados del ciclo de vida de un turno. Completado y cancelado son
// terminales: no hay vuelta atrás desde ninguno de los dos.
const (
	EstadoPendiente  = "pendiente"
	EstadoCompletado = "completado"
	EstadoCancelado  = "cancelado"
)

// Tipos de adicional.
const (
	TipoServicio = "servicio"
	TipoProducto = "producto"
)

// Turno es una reserva de un cliente con un empleado.
type Turno struct {
	gorm.Model
	NombreCliente string    `json:"nombreCliente" gorm:"not null"`
	FechaHora     time.Time `json:"fechaHora" gorm:"not null;index"`
	Estado        string    `json:"estado" gorm:"size:20;not null;default:'pendiente';index"`
	ClienteID     uint      `json:"clienteId" gorm:"not null;index"`
	EmpleadoID    uint      `json:"empleadoId" gorm:"not null;index"`
	ServicioID    *uint     `json:"servicioId"`
	MontoTotal    float64   `json:"montoTotal" gorm:"not null;default:0"`
	Extras        string    `json:"extras"`

	Adicionales []Adicional `gorm:"foreignKey:TurnoID;constraint:OnDelete:CASCADE" json:"adicionales,omitempty"`
}

// Adicional es una línea extra del turno: un servicio o producto sumado al
// servicio base. Nombre y precio quedan congelados al momento del alta para
// que editar el catálogo no reescriba la historia.
type Adicional struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	TurnoID uint    `gorm:"not null;index" json:"turnoId"`
	Tipo    string  `gorm:"size:20;not null" json:"tipo"`
	ItemID  uint    `json:"itemId"`
	Nombre  string  `gorm:"size:100" json:"nombre"`
	Precio  float64 `json:"precio"`
}

// Venta registra la salida de un producto en el cierre de un turno. Es un
// asiento aparte de los adicionales, pensado para la contabilidad.
type Venta struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TurnoID    uint      `gorm:"not null;index" json:"turnoId"`
	ProductoID uint      `gorm:"not null" json:"productoId"`
	Cantidad   int       `gorm:"not null;default:1" json:"cantidad"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Migrate crea las tablas del agregado turno.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Turno{}, &Adicional{}, &Venta{})
}

// EsTerminal indica si el estado no admite más transiciones.
func (t *Turno) EsTerminal() bool {
	return t.Estado == EstadoCompletado || t.Estado == EstadoCancelado
}
