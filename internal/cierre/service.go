package cierre

import (
	"errors"

	"github.com/barbero1999/api-turnos/internal/producto"
	"github.com/barbero1999/api-turnos/internal/puntos"
	"github.com/barbero1999/api-turnos/internal/servicio"
	"github.com/barbero1999/api-turnos/internal/turno"
	"github.com/barbero1999/api-turnos/internal/usuario"
	"gorm.io/gorm"
)

// Service liquida turnos: arma la cuenta (servicio base más adicionales),
// descuenta stock, congela el total y acredita los puntos del programa de
// fidelidad.
type Service struct {
	Turnos    turno.Repository
	Servicios servicio.Repository
	Productos producto.Repository
	Puntos    puntos.Repository
	Usuarios  usuario.Repository
}

func NewService() *Service {
	return &Service{
		Turnos:    turno.NewRepository(),
		Servicios: servicio.NewRepository(),
		Productos: producto.NewRepository(),
		Puntos:    puntos.NewRepository(),
		Usuarios:  usuario.NewRepository(),
	}
}

// ItemAdicional referencia un ítem del catálogo para sumarlo a la cuenta.
type ItemAdicional struct {
	Tipo   string `json:"tipo"`
	ItemID uint   `json:"itemId"`
}

// ResultadoCierre resume el cobro de un turno.
type ResultadoCierre struct {
	Turno           *turno.Turno `json:"turno"`
	PuntosOtorgados int          `json:"puntosOtorgados"`
	YaEstabaCerrado bool         `json:"-"`
}

// CalcularTotal suma el precio del servicio base más cada adicional ya
// congelado. No escribe nada.
func (s *Service) CalcularTotal(db *gorm.DB, t *turno.Turno) (float64, error) {
	var total float64
	if t.ServicioID != nil {
		srv, err := s.Servicios.BuscarPorID(db, *t.ServicioID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		if err == nil {
			total += srv.Precio
		}
	}

	adicionales, err := s.Turnos.ListarAdicionales(db, t.ID)
	if err != nil {
		return 0, err
	}
	for _, a := range adicionales {
		total += a.Precio
	}
	return total, nil
}

// congelar arma el Adicional con nombre y precio tomados del catálogo en
// este momento.
func (s *Service) congelar(db *gorm.DB, turnoID uint, item ItemAdicional) (*turno.Adicional, error) {
	switch item.Tipo {
	case turno.TipoServicio:
		srv, err := s.Servicios.BuscarPorID(db, item.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoEncontrado
			}
			return nil, err
		}
		return &turno.Adicional{
			TurnoID: turnoID,
			Tipo:    turno.TipoServicio,
			ItemID:  srv.ID,
			Nombre:  srv.Nombre,
			Precio:  srv.Precio,
		}, nil

	case turno.TipoProducto:
		p, err := s.Productos.BuscarPorID(db, item.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoEncontrado
			}
			return nil, err
		}
		return &turno.Adicional{
			TurnoID: turnoID,
			Tipo:    turno.TipoProducto,
			ItemID:  p.ID,
			Nombre:  p.Nombre,
			Precio:  p.Precio,
		}, nil
	}
	return nil, ErrTipoInvalido
}

// AgregarAdicional suma un ítem a la cuenta del turno. Para productos
// descuenta una unidad de stock y deja el asiento de venta.
func (s *Service) AgregarAdicional(db *gorm.DB, turnoID uint, item ItemAdicional) (*turno.Turno, error) {
	var resultado *turno.Turno
	err := db.Transaction(func(tx *gorm.DB) error {
		t, err := s.buscarTurno(tx, turnoID)
		if err != nil {
			return err
		}

		a, err := s.congelar(tx, t.ID, item)
		if err != nil {
			return err
		}
		if a.Tipo == turno.TipoProducto {
			p, err := s.Productos.BuscarPorID(tx, a.ItemID)
			if err != nil {
				return err
			}
			if p.Stock <= 0 {
				return ErrSinStock
			}
			if err := s.Productos.DescontarStock(tx, a.ItemID); err != nil {
				return err
			}
			if err := s.Turnos.CrearVenta(tx, &turno.Venta{TurnoID: t.ID, ProductoID: a.ItemID, Cantidad: 1}); err != nil {
				return err
			}
		}
		if err := s.Turnos.CrearAdicional(tx, a); err != nil {
			return err
		}

		return s.actualizarTotal(tx, t)
	})
	if err != nil {
		return nil, err
	}
	resultado, err = s.Turnos.BuscarPorID(db, turnoID)
	return resultado, err
}

// ReemplazarAdicionales deja la cuenta exactamente con los ítems pedidos:
// borra los adicionales anteriores, congela los nuevos y recalcula el total.
// No toca stock: el ajuste manual de la cuenta es correctivo, el stock se
// mueve solo al agregar producto por producto o al cerrar.
func (s *Service) ReemplazarAdicionales(db *gorm.DB, turnoID uint, items []ItemAdicional) (*turno.Turno, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		t, err := s.buscarTurno(tx, turnoID)
		if err != nil {
			return err
		}

		if err := s.Turnos.EliminarAdicionales(tx, t.ID); err != nil {
			return err
		}
		for _, item := range items {
			a, err := s.congelar(tx, t.ID, item)
			if err != nil {
				return err
			}
			if err := s.Turnos.CrearAdicional(tx, a); err != nil {
				return err
			}
		}

		return s.actualizarTotal(tx, t)
	})
	if err != nil {
		return nil, err
	}
	return s.Turnos.BuscarPorID(db, turnoID)
}

// CompletarTurno cierra el turno: congela el total, acredita puntos al
// cliente y opcionalmente suma un producto de última hora si hay stock.
// Si el turno ya estaba completado no cambia nada y devuelve el estado
// actual, así un doble click en caja no duplica puntos ni ventas.
func (s *Service) CompletarTurno(db *gorm.DB, turnoID uint, productoExtraID uint) (*ResultadoCierre, error) {
	var resultado ResultadoCierre
	err := db.Transaction(func(tx *gorm.DB) error {
		t, err := s.buscarTurno(tx, turnoID)
		if err != nil {
			return err
		}
		if t.Estado == turno.EstadoCancelado {
			return ErrTurnoCancelado
		}
		if t.Estado == turno.EstadoCompletado {
			resultado.Turno = t
			resultado.YaEstabaCerrado = true
			return nil
		}

		if productoExtraID != 0 {
			p, err := s.Productos.BuscarPorID(tx, productoExtraID)
			if err == nil && p.Stock > 0 {
				a := &turno.Adicional{
					TurnoID: t.ID,
					Tipo:    turno.TipoProducto,
					ItemID:  p.ID,
					Nombre:  p.Nombre,
					Precio:  p.Precio,
				}
				if err := s.Turnos.CrearAdicional(tx, a); err != nil {
					return err
				}
				if err := s.Productos.DescontarStock(tx, p.ID); err != nil {
					return err
				}
				if err := s.Turnos.CrearVenta(tx, &turno.Venta{TurnoID: t.ID, ProductoID: p.ID, Cantidad: 1}); err != nil {
					return err
				}
			}
		}

		total, err := s.CalcularTotal(tx, t)
		if err != nil {
			return err
		}
		t.MontoTotal = total
		t.Estado = turno.EstadoCompletado
		err = tx.Model(&turno.Turno{}).Where("id = ?", t.ID).
			Updates(map[string]any{"estado": turno.EstadoCompletado, "monto_total": total}).Error
		if err != nil {
			return err
		}

		regla, err := s.Puntos.BuscarReglaPorMonto(tx, total)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if regla != nil && regla.Puntos > 0 {
			if err := s.Usuarios.SumarPuntos(tx, t.ClienteID, regla.Puntos); err != nil {
				return err
			}
			resultado.PuntosOtorgados = regla.Puntos
		}

		resultado.Turno = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !resultado.YaEstabaCerrado {
		resultado.Turno, err = s.Turnos.BuscarPorID(db, turnoID)
		if err != nil {
			return nil, err
		}
	}
	return &resultado, nil
}

func (s *Service) buscarTurno(db *gorm.DB, id uint) (*turno.Turno, error) {
	t, err := s.Turnos.BuscarPorID(db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return t, nil
}

// actualizarTotal reescribe solo la columna del total. Guardar el struct
// entero re-insertaría los adicionales precargados que acabamos de borrar.
func (s *Service) actualizarTotal(db *gorm.DB, t *turno.Turno) error {
	total, err := s.CalcularTotal(db, t)
	if err != nil {
		return err
	}
	return db.Model(&turno.Turno{}).Where("id = ?", t.ID).
		Update("monto_total", total).Error
}
