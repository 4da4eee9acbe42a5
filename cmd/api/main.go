package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/yourusername/afiliados-api/internal/config"
	"github.com/yourusername/afiliados-api/internal/domain/repository"
	"github.com/yourusername/afiliados-api/internal/handler"
	"github.com/yourusername/afiliados-api/internal/middleware"
	pgRepo "github.com/yourusername/afiliados-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/afiliados-api/internal/repository/redis"
	"github.com/yourusername/afiliados-api/internal/service"
	"github.com/yourusername/afiliados-api/pkg/database"
	"github.com/yourusername/afiliados-api/pkg/hash"
)

func main() {
	// Cargamos la configuración
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Cargando configuración desde %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Conexión a PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Migraciones
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Conexión a Redis (opcional: sin Redis no hay rate limiting ni enfriamiento)
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = database.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Aviso: Redis no disponible, se continúa sin rate limiting: %v", err)
			redisClient = nil
		} else {
			log.Println("Conexión a Redis establecida")
		}
	} else {
		log.Println("Redis no configurado, se continúa sin rate limiting ni enfriamiento")
	}

	// Repositorios
	afiliadoRepo := pgRepo.NewAfiliadoRepo(db)
	catalogoRepo := pgRepo.NewCatalogoRepo(db)
	contactoRepo := pgRepo.NewContactoRepo(db)

	var cacheRepo *redisRepo.CacheRepo
	if redisClient != nil {
		cacheRepo, err = redisRepo.NewCacheRepo(redisClient)
		if err != nil {
			log.Printf("Failed to initialize CacheRepo: %v", err)
			os.Exit(1)
		}
	}

	// Colaboradores compartidos. Se construyen una vez aquí y se inyectan:
	// ningún servicio importa singletons.
	hasher := hash.NewBcryptHasher(0)
	plantillas := service.CargarPlantillas(cfg.Email.PlantillasDir)

	var emailService service.EmailService
	if cfg.Email.Enabled {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("Envío de correo deshabilitado, se usa el servicio noop")
		emailService = &service.NoopEmailService{}
	}

	breachChecker := service.NewPwnedPasswordChecker(cfg.Breach.BaseURL, 5*time.Second)

	captchaVerifier, err := service.NewRecaptchaVerifier(cfg.Captcha.Secret, cfg.Captcha.VerifyURL, 5*time.Second)
	if err != nil {
		log.Printf("Failed to initialize captcha verifier: %v", err)
		os.Exit(1)
	}

	// Servicios
	otpService, err := service.NewOTPService(afiliadoRepo, hasher, cfg.OTP.Secret)
	if err != nil {
		log.Printf("Failed to initialize OTP service: %v", err)
		os.Exit(1)
	}

	// Se asigna sólo con repositorio real: una interfaz con puntero nulo
	// dentro rompería los chequeos de nil en los servicios
	var cache repository.CacheRepository
	if cacheRepo != nil {
		cache = cacheRepo
	}

	registrationService, err := service.NewRegistrationService(
		afiliadoRepo, catalogoRepo, otpService, emailService, breachChecker, hasher, cache, plantillas,
	)
	if err != nil {
		log.Printf("Failed to initialize registration service: %v", err)
		os.Exit(1)
	}

	resetService, err := service.NewPasswordResetService(
		afiliadoRepo, otpService, emailService, breachChecker, captchaVerifier, hasher, cache, plantillas,
	)
	if err != nil {
		log.Printf("Failed to initialize password reset service: %v", err)
		os.Exit(1)
	}

	contactoService, err := service.NewContactoService(contactoRepo, emailService, plantillas)
	if err != nil {
		log.Printf("Failed to initialize contacto service: %v", err)
		os.Exit(1)
	}

	catalogoService, err := service.NewCatalogoService(catalogoRepo)
	if err != nil {
		log.Printf("Failed to initialize catalogo service: %v", err)
		os.Exit(1)
	}

	// Handlers
	registroHandler := handler.NewRegistroHandler(registrationService)
	passwordHandler := handler.NewPasswordHandler(resetService, breachChecker)
	contactoHandler := handler.NewContactoHandler(contactoService)
	catalogoHandler := handler.NewCatalogoHandler(catalogoService)

	// Router Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Production: no confiar en cabeceras de proxy (protección de IP spoofing)
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// CORS
	allowedOrigins := cfg.CORS.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiting sobre el caché compartido (si Redis está disponible)
	var limitarEstricto, limitarGeneral gin.HandlerFunc
	if cache != nil {
		rateLimiter := middleware.NewRateLimiter(cache)
		limitarEstricto = rateLimiter.Limit(middleware.StrictOTPRateLimitConfig())
		limitarGeneral = rateLimiter.Limit(middleware.DefaultPortalRateLimitConfig())
	} else {
		passthrough := func(c *gin.Context) { c.Next() }
		limitarEstricto, limitarGeneral = passthrough, passthrough
	}

	// Rutas del API
	api := router.Group("/api")
	{
		registro := api.Group("/registro")
		{
			registro.POST("/enviarCodigo", limitarEstricto, registroHandler.EnviarCodigo)
			registro.POST("/validarCodigo", limitarEstricto, registroHandler.ValidarCodigo)
			registro.POST("/actualizarUsuario", limitarGeneral, registroHandler.ActualizarUsuario)
		}

		password := api.Group("/password")
		{
			password.POST("/comprobar", limitarGeneral, passwordHandler.Comprobar)
			password.POST("/verificarCorreoCaptcha", limitarEstricto, passwordHandler.VerificarCorreoCaptcha)
			password.POST("/validarCodigo", limitarEstricto, passwordHandler.ValidarCodigo)
			password.POST("/actualizarContrasena", limitarGeneral, passwordHandler.ActualizarContrasena)
		}

		catalogos := api.Group("/catalogos")
		{
			catalogos.GET("/universidades", catalogoHandler.Universidades)
			catalogos.GET("/cargos", catalogoHandler.Cargos)
			catalogos.GET("/programas", catalogoHandler.Programas)
		}

		contacto := api.Group("/contacto")
		{
			contacto.POST("", limitarGeneral, contactoHandler.Crear)
			contacto.GET("", contactoHandler.Listar)
			contacto.POST("/:id/responder", contactoHandler.Responder)
		}
	}

	// Servidor HTTP con tiempos límite contra clientes lentos
	readTimeout := cfg.Server.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15
	}
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 15
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	go func() {
		log.Printf("Servidor escuchando en el puerto %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Esperamos SIGINT o SIGTERM para el apagado ordenado
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Apagando el servidor...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Servidor detenido correctamente")
}
