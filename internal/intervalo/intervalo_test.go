package intervalo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func enHora(h, m int) time.Time {
	return time.Date(2025, 6, 10, h, m, 0, 0, time.Local)
}

func TestSuperpone(t *testing.T) {
	a := Intervalo{Inicio: enHora(10, 0), Fin: enHora(10, 30)}

	casos := []struct {
		nombre string
		otro   Intervalo
		choca  bool
	}{
		{"mismo rango", Intervalo{enHora(10, 0), enHora(10, 30)}, true},
		{"contenido", Intervalo{enHora(10, 10), enHora(10, 20)}, true},
		{"cruza el inicio", Intervalo{enHora(9, 45), enHora(10, 15)}, true},
		{"cruza el fin", Intervalo{enHora(10, 15), enHora(10, 45)}, true},
		{"pegado al fin", Intervalo{enHora(10, 30), enHora(11, 0)}, false},
		{"pegado al inicio", Intervalo{enHora(9, 30), enHora(10, 0)}, false},
		{"separado", Intervalo{enHora(12, 0), enHora(12, 30)}, false},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.choca, a.Superpone(c.otro))
			assert.Equal(t, c.choca, c.otro.Superpone(a))
		})
	}
}

func TestDesdeUsaDuracionPorDefecto(t *testing.T) {
	inicio := enHora(14, 0)

	assert.Equal(t, enHora(14, 45), Desde(inicio, 45).Fin)
	assert.Equal(t, enHora(14, 30), Desde(inicio, 0).Fin)
	assert.Equal(t, enHora(14, 30), Desde(inicio, -15).Fin)
}

func TestDiaCompletoTerminaALas2359(t *testing.T) {
	i := DiaCompleto(enHora(8, 0))

	assert.Equal(t, enHora(0, 0), i.Inicio)
	assert.Equal(t, enHora(23, 59), i.Fin)

	// Cualquier franja del día choca con el bloqueo completo.
	assert.True(t, i.Superpone(Desde(enHora(9, 0), 30)))
	assert.True(t, i.Superpone(Desde(enHora(23, 0), 30)))
}

func TestCombinarFechaHora(t *testing.T) {
	dt, err := CombinarFechaHora("2025-06-10", "15:30")
	assert.NoError(t, err)
	assert.Equal(t, enHora(15, 30), dt)

	_, err = CombinarFechaHora("2025-06-10", "25:99")
	assert.Error(t, err)
}
