package cierre

import "errors"

var (
	// ErrNoEncontrado indica que el turno o el ítem de catálogo no existe.
	ErrNoEncontrado = errors.New("registro no encontrado")

	// ErrTurnoCancelado indica un intento de cobrar un turno cancelado.
	ErrTurnoCancelado = errors.New("no se puede completar un turno cancelado")

	// ErrSinStock indica que el producto pedido no tiene unidades.
	ErrSinStock = errors.New("el producto no tiene stock disponible")

	// ErrTipoInvalido indica un adicional que no es servicio ni producto.
	ErrTipoInvalido = errors.New("tipo de adicional inválido")
)
