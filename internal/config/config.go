package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config guarda todos los ajustes de la aplicación
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Email    EmailConfig
	OTP      OTPConfig
	Captcha  CaptchaConfig
	Breach   BreachConfig
	CORS     CORSConfig
}

// ServerConfig contiene los ajustes del servidor HTTP
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig contiene los ajustes de conexión a PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig contiene los ajustes de conexión a Redis. Redis es opcional:
// sin él no hay enfriamiento de reenvío ni rate limiting.
type RedisConfig struct {
	// Addr: dirección host:puerto. Vacío deshabilita Redis.
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// EmailConfig contiene los ajustes del envío de correo (Resend)
type EmailConfig struct {
	ResendAPIKey string `mapstructure:"resend_api_key"`
	From         string `mapstructure:"from"`
	// Enabled: con false se usa el servicio noop (desarrollo y pruebas)
	Enabled bool `mapstructure:"enabled"`
	// PlantillasDir: directorio opcional con las plantillas HTML
	PlantillasDir string `mapstructure:"plantillas_dir"`
}

// OTPConfig contiene los ajustes del motor de códigos de verificación
type OTPConfig struct {
	// Secret firma el token que envuelve cada código antes de hashearlo.
	// Su fortaleza es determinante: el código en sí son 6 dígitos.
	Secret string `mapstructure:"secret"`
}

// CaptchaConfig contiene los ajustes del verificador reCAPTCHA
type CaptchaConfig struct {
	Secret    string `mapstructure:"secret"`
	VerifyURL string `mapstructure:"verify_url"`
}

// BreachConfig contiene los ajustes del chequeo de contraseñas comprometidas
type BreachConfig struct {
	// BaseURL del endpoint de rangos; vacío usa la API pública de Pwned Passwords
	BaseURL string `mapstructure:"base_url"`
}

// CORSConfig contiene los orígenes permitidos
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PostgresConnectionString forma la cadena de conexión a PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load carga la configuración desde archivo y variables de entorno
func Load(configPath string) (*Config, error) {
	vip := viper.New() // instancia propia para evitar estado global

	// Enlazamos las variables de entorno de forma explícita

	// Sección Database
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	// Sección Redis
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")

	// Sección Email
	vip.BindEnv("email.resend_api_key", "RESEND_API_KEY")
	vip.BindEnv("email.from", "EMAIL_FROM")
	vip.BindEnv("email.enabled", "EMAIL_ENABLED")
	vip.BindEnv("email.plantillas_dir", "EMAIL_PLANTILLAS_DIR")

	// Sección OTP
	vip.BindEnv("otp.secret", "OTP_SECRET")

	// Sección Captcha
	vip.BindEnv("captcha.secret", "CAPTCHA_SECRET")
	vip.BindEnv("captcha.verify_url", "CAPTCHA_VERIFY_URL")

	// Sección Breach
	vip.BindEnv("breach.base_url", "BREACH_BASE_URL")

	// Server y CORS
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")

	// Archivo de configuración (opcional: las env vars bastan)
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Archivo de configuración '%s' no encontrado, se usan variables de entorno.", configPath)
			} else {
				log.Printf("Aviso: no se pudo leer el archivo de configuración '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Volcado de la configuración cargada (sólo fuera de release)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Configuración cargada ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Email Enabled: %t", cfg.Email.Enabled)
		log.Printf("OTP Secret Set: %t", cfg.OTP.Secret != "")
		log.Printf("Captcha Secret Set: %t", cfg.Captcha.Secret != "")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------")
	}

	// Parámetros obligatorios
	if cfg.OTP.Secret == "" {
		return nil, fmt.Errorf("OTP signing secret is required in config (check OTP_SECRET env var)")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if cfg.Email.Enabled && (cfg.Email.ResendAPIKey == "" || cfg.Email.From == "") {
		return nil, fmt.Errorf("email is enabled but RESEND_API_KEY or EMAIL_FROM is missing")
	}
	if os.Getenv("GIN_MODE") == "release" {
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("database password is required in release mode (check DATABASE_PASSWORD env var)")
		}
		if cfg.Captcha.Secret == "" {
			return nil, fmt.Errorf("captcha secret is required in release mode (check CAPTCHA_SECRET env var)")
		}
	}

	return &cfg, nil
}
