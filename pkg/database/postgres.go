package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB crea una conexión nueva a PostgreSQL
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Ajustes del pool de conexiones
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// MigrateDB aplica las migraciones SQL de la carpeta 'migrations'
func MigrateDB(db *gorm.DB) error {
	log.Println("Aplicando migraciones de base de datos...")

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("no se pudo obtener *sql.DB desde *gorm.DB: %w", err)
	}

	// Comprobamos que la conexión está viva antes de migrar
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("no se pudo comprobar la conexión antes de migrar: %w", err)
	}

	driver, err := migratePostgres.WithInstance(sqlDB, &migratePostgres.Config{})
	if err != nil {
		return fmt.Errorf("no se pudo crear el driver postgres para migrate: %w", err)
	}

	// "file://migrations" apunta a la carpeta migrations en el directorio
	// de trabajo de la aplicación
	m, err := migrateV4.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("no se pudo crear la instancia de migrate: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrateV4.ErrNoChange) {
		log.Printf("Error aplicando migraciones: %v", err)
		return fmt.Errorf("error aplicando migraciones 'up': %w", err)
	} else if errors.Is(err, migrateV4.ErrNoChange) {
		log.Println("Sin cambios en migraciones, la base de datos ya está al día.")
	} else {
		log.Println("Migraciones aplicadas correctamente.")
	}

	return nil
}
