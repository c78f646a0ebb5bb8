package main

import (
	"net/http"

	"github.com/barbero1999/api-turnos/internal/agenda"
	"github.com/barbero1999/api-turnos/internal/auth"
	"github.com/barbero1999/api-turnos/internal/bloqueo"
	"github.com/barbero1999/api-turnos/internal/cierre"
	"github.com/barbero1999/api-turnos/internal/config"
	"github.com/barbero1999/api-turnos/internal/database"
	"github.com/barbero1999/api-turnos/internal/empleado"
	"github.com/barbero1999/api-turnos/internal/liquidacion"
	"github.com/barbero1999/api-turnos/internal/middleware"
	"github.com/barbero1999/api-turnos/internal/notificacion"
	"github.com/barbero1999/api-turnos/internal/producto"
	"github.com/barbero1999/api-turnos/internal/puntos"
	"github.com/barbero1999/api-turnos/internal/servicio"
	"github.com/barbero1999/api-turnos/internal/sucursal"
	"github.com/barbero1999/api-turnos/internal/turno"
	"github.com/barbero1999/api-turnos/internal/usuario"
	"github.com/barbero1999/api-turnos/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

func migrar(db *gorm.DB) error {
	for _, fn := range []func(*gorm.DB) error{
		usuario.Migrate,
		sucursal.Migrate,
		servicio.Migrate,
		producto.Migrate,
		empleado.Migrate,
		bloqueo.Migrate,
		turno.Migrate,
		puntos.Migrate,
	} {
		if err := fn(db); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	cfg := config.Cargar()

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Service: "api-turnos",
	})

	db, err := database.Conectar(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("no se pudo conectar a la base", "error", err)
	}

	auth.Configurar(cfg.JWTSecret)

	if err := migrar(db); err != nil {
		log.Fatal("falló la migración", "error", err)
	}

	notificador := notificacion.New(cfg.WebhookURL, log)

	usuarioHandler := usuario.NewHandler(db)
	sucursalHandler := sucursal.NewHandler(db)
	servicioHandler := servicio.NewHandler(db)
	productoHandler := producto.NewHandler(db)
	empleadoHandler := empleado.NewHandler(db)
	bloqueoHandler := bloqueo.NewHandler(db)
	turnoHandler := turno.NewHandler(db)
	agendaHandler := agenda.NewHandler(db, notificador)
	cierreHandler := cierre.NewHandler(db, notificador)
	puntosHandler := puntos.NewHandler(db)
	liquidacionHandler := liquidacion.NewHandler(db)

	r := mux.NewRouter()
	r.Use(middleware.RequestLog(log))

	// Rutas públicas
	r.HandleFunc("/api/registro", usuarioHandler.Registro).Methods("POST")
	r.HandleFunc("/api/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/api/servicios", servicioHandler.Listar).Methods("GET")
	r.HandleFunc("/api/sucursales", sucursalHandler.Listar).Methods("GET")
	r.HandleFunc("/api/empleados", empleadoHandler.Listar).Methods("GET")
	r.HandleFunc("/api/disponibilidad", agendaHandler.Disponibilidad).Methods("GET")

	// Rutas autenticadas, cualquier rol
	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth.MiddlewareAutenticacion)
	api.HandleFunc("/me", usuarioHandler.Me).Methods("GET")
	api.HandleFunc("/turnos", agendaHandler.Agendar).Methods("POST")
	api.HandleFunc("/turnos/mios", turnoHandler.ListarMios).Methods("GET")
	api.HandleFunc("/turnos/{id}", agendaHandler.Reprogramar).Methods("PUT")
	api.HandleFunc("/turnos/{id}/cancelar", turnoHandler.Cancelar).Methods("POST")

	// Personal del local
	staff := api.NewRoute().Subrouter()
	staff.Use(auth.RequireRol(auth.RolEmpleado, auth.RolAdmin))
	staff.HandleFunc("/agenda", turnoHandler.Agenda).Methods("GET")
	staff.HandleFunc("/clientes", usuarioHandler.BuscarClientes).Methods("GET")
	staff.HandleFunc("/productos", productoHandler.Listar).Methods("GET")
	staff.HandleFunc("/turnos/{id}/completar", cierreHandler.Completar).Methods("POST")
	staff.HandleFunc("/turnos/{id}/adicionales", cierreHandler.ListarAdicionales).Methods("GET")
	staff.HandleFunc("/turnos/{id}/ventas", cierreHandler.ListarVentas).Methods("GET")
	staff.HandleFunc("/turnos/{id}/adicionales", cierreHandler.AgregarAdicional).Methods("POST")
	staff.HandleFunc("/turnos/{id}/adicionales", cierreHandler.ReemplazarAdicionales).Methods("PUT")
	staff.HandleFunc("/bloqueos", bloqueoHandler.Crear).Methods("POST")
	staff.HandleFunc("/bloqueos", bloqueoHandler.Listar).Methods("GET")
	staff.HandleFunc("/bloqueos/{id}", bloqueoHandler.Actualizar).Methods("PUT")
	staff.HandleFunc("/bloqueos/{id}", bloqueoHandler.Eliminar).Methods("DELETE")
	staff.HandleFunc("/clientes/{usuarioId}/canjes", puntosHandler.Canjear).Methods("POST")
	staff.HandleFunc("/empleados/{id}/historial", liquidacionHandler.Historial).Methods("GET")
	staff.HandleFunc("/premios", puntosHandler.ListarPremios).Methods("GET")

	// Solo administración
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireRol(auth.RolAdmin))
	admin.HandleFunc("/servicios", servicioHandler.Crear).Methods("POST")
	admin.HandleFunc("/servicios/{id}", servicioHandler.Actualizar).Methods("PUT")
	admin.HandleFunc("/servicios/{id}", servicioHandler.Eliminar).Methods("DELETE")
	admin.HandleFunc("/productos", productoHandler.Crear).Methods("POST")
	admin.HandleFunc("/productos/{id}", productoHandler.Actualizar).Methods("PUT")
	admin.HandleFunc("/productos/{id}", productoHandler.Eliminar).Methods("DELETE")
	admin.HandleFunc("/sucursales", sucursalHandler.Crear).Methods("POST")
	admin.HandleFunc("/empleados", empleadoHandler.Crear).Methods("POST")
	admin.HandleFunc("/empleados/{id}", empleadoHandler.Actualizar).Methods("PUT")
	admin.HandleFunc("/empleados/{id}", empleadoHandler.Eliminar).Methods("DELETE")
	admin.HandleFunc("/puntos/reglas", puntosHandler.CrearRegla).Methods("POST")
	admin.HandleFunc("/puntos/reglas", puntosHandler.ListarReglas).Methods("GET")
	admin.HandleFunc("/puntos/reglas/{id}", puntosHandler.EliminarRegla).Methods("DELETE")
	admin.HandleFunc("/premios", puntosHandler.CrearPremio).Methods("POST")
	admin.HandleFunc("/premios/{id}", puntosHandler.EliminarPremio).Methods("DELETE")
	admin.HandleFunc("/liquidaciones/quincenal", liquidacionHandler.Quincenal).Methods("GET")
	admin.HandleFunc("/liquidaciones/rango", liquidacionHandler.PorRango).Methods("GET")
	admin.HandleFunc("/liquidaciones/semanal", liquidacionHandler.Semanal).Methods("GET")
	admin.HandleFunc("/liquidaciones/mensual", liquidacionHandler.Mensual).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	log.Info("servidor escuchando", "puerto", cfg.Puerto)
	if err := http.ListenAndServe(":"+cfg.Puerto, handler); err != nil {
		log.Fatal("el servidor se detuvo", "error", err)
	}
}
