package notificacion

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/barbero1999/api-turnos/pkg/logger"
)

// Notificador envía avisos a un webhook externo (confirmaciones de turno,
// cierres). Todos los envíos son fire-and-forget: corren después del commit
// y un fallo solo se loguea, nunca toca el estado del turno.
type Notificador struct {
	URL    string
	Client *http.Client
	Log    *logger.Logger
}

func New(url string, log *logger.Logger) *Notificador {
	return &Notificador{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
		Log:    log,
	}
}

// TurnoAgendado avisa que se reservó o reprogramó un turno.
func (n *Notificador) TurnoAgendado(turnoID uint, cliente string, fechaHora time.Time) {
	n.enviar(map[string]any{
		"evento":    "turno_agendado",
		"turnoId":   turnoID,
		"cliente":   cliente,
		"fechaHora": fechaHora.Format(time.RFC3339),
	})
}

// TurnoCompletado avisa el cierre de un turno con su total final.
func (n *Notificador) TurnoCompletado(turnoID uint, total float64, puntos int) {
	n.enviar(map[string]any{
		"evento":  "turno_completado",
		"turnoId": turnoID,
		"total":   total,
		"puntos":  puntos,
	})
}

func (n *Notificador) enviar(payload map[string]any) {
	if n == nil || n.URL == "" {
		return
	}

	go func() {
		body, _ := json.Marshal(payload)
		resp, err := n.Client.Post(n.URL, "application/json", bytes.NewBuffer(body))
		if err != nil {
			n.Log.Warn("error al enviar webhook", "error", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			n.Log.Warn("webhook respondió con error", "estado", resp.StatusCode)
		}
	}()
}
