package intervalo

import (
	"time"
)

const (
	FormatoFecha = "2006-01-02"
	FormatoHora  = "15:04"

	// DuracionPorDefecto es la duración asumida (en minutos) cuando el
	// servicio no define una propia.
	DuracionPorDefecto = 30
)

// Intervalo representa un rango semiabierto [Inicio, Fin) en hora local.
type Intervalo struct {
	Inicio time.Time `json:"inicio"`
	Fin    time.Time `json:"fin"`
}

// Superpone aplica la regla estricta de choque de rangos: dos intervalos
// chocan si cada uno empieza antes de que termine el otro. Un turno que
// arranca justo cuando termina el anterior no choca.
func (i Intervalo) Superpone(otro Intervalo) bool {
	return i.Inicio.Before(otro.Fin) && otro.Inicio.Before(i.Fin)
}

// Desde construye el intervalo [inicio, inicio+duración).
func Desde(inicio time.Time, duracionMinutos int) Intervalo {
	d := DuracionMinutos(duracionMinutos)
	return Intervalo{Inicio: inicio, Fin: inicio.Add(time.Duration(d) * time.Minute)}
}

// DuracionMinutos normaliza la duración de un servicio: valores nulos o
// negativos caen al valor por defecto de 30 minutos.
func DuracionMinutos(min int) int {
	if min <= 0 {
		return DuracionPorDefecto
	}
	return min
}

// DiaCompleto cubre la jornada entera de una fecha. El fin queda en 23:59,
// no en la medianoche siguiente; los bloqueos de día completo siempre se
// guardaron así y los calendarios existentes dependen de ese límite.
func DiaCompleto(fecha time.Time) Intervalo {
	inicio := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), 0, 0, 0, 0, fecha.Location())
	return Intervalo{Inicio: inicio, Fin: inicio.Add(23*time.Hour + 59*time.Minute)}
}

// CombinarFechaHora arma el instante a partir de "YYYY-MM-DD" y "HH:MM".
func CombinarFechaHora(fecha, hora string) (time.Time, error) {
	return time.ParseInLocation(FormatoFecha+" "+FormatoHora, fecha+" "+hora, time.Local)
}

// HoraEnFecha ubica una hora "HH:MM" dentro de la fecha dada.
func HoraEnFecha(fecha time.Time, hora string) (time.Time, error) {
	t, err := time.ParseInLocation(FormatoHora, hora, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(fecha.Year(), fecha.Month(), fecha.Day(), t.Hour(), t.Minute(), 0, 0, fecha.Location()), nil
}
