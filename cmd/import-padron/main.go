package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/afiliados-api/internal/config"
	"github.com/yourusername/afiliados-api/internal/domain/entity"
	pgRepo "github.com/yourusername/afiliados-api/internal/repository/postgres"
	"github.com/yourusername/afiliados-api/pkg/database"
)

// Herramienta operativa: carga el padrón de afiliados desde un libro .xlsx.
// El flujo de registro asume que estas filas existen de antemano; sin esta
// carga nadie puede registrarse.
//
// Columnas esperadas en la primera hoja, con cabecera en la fila 1:
//
//	A: email | B: fecha_nacimiento (AAAA-MM-DD) | C: nombre | D: apellidos | E: estado
//
// Estado vacío se interpreta como "activo".
func main() {
	archivo := flag.String("archivo", "padron.xlsx", "ruta del libro .xlsx con el padrón")
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.MigrateDB(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	f, err := excelize.OpenFile(*archivo)
	if err != nil {
		log.Fatalf("No se pudo abrir el archivo %s: %v", *archivo, err)
	}
	defer f.Close()

	hoja := f.GetSheetName(0)
	filas, err := f.GetRows(hoja)
	if err != nil {
		log.Fatalf("No se pudieron leer las filas de la hoja %s: %v", hoja, err)
	}
	if len(filas) < 2 {
		log.Fatalf("El archivo no contiene filas de datos")
	}

	afiliadoRepo := pgRepo.NewAfiliadoRepo(db)

	var insertados, saltados int
	for i, fila := range filas[1:] {
		numFila := i + 2 // la fila 1 es la cabecera

		afiliado, err := parseaFila(fila)
		if err != nil {
			log.Printf("Fila %d saltada: %v", numFila, err)
			saltados++
			continue
		}

		// Los duplicados por email se saltan: la importación es re-ejecutable
		if _, err := afiliadoRepo.GetByEmail(afiliado.Email); err == nil {
			log.Printf("Fila %d saltada: el email %s ya existe", numFila, afiliado.Email)
			saltados++
			continue
		}

		if err := afiliadoRepo.Create(afiliado); err != nil {
			log.Printf("Fila %d saltada: error al insertar: %v", numFila, err)
			saltados++
			continue
		}
		insertados++
	}

	log.Printf("Importación terminada: %d insertados, %d saltados de %d filas", insertados, saltados, len(filas)-1)
}

func parseaFila(fila []string) (*entity.Afiliado, error) {
	if len(fila) < 2 {
		return nil, fmt.Errorf("faltan columnas obligatorias (email, fecha_nacimiento)")
	}

	email := entity.NormalizaEmail(fila[0])
	if email == "" {
		return nil, fmt.Errorf("email vacío")
	}

	fechaNacimiento, err := time.Parse("2006-01-02", fila[1])
	if err != nil {
		return nil, fmt.Errorf("fecha de nacimiento no válida %q: usa AAAA-MM-DD", fila[1])
	}

	celda := func(idx int) string {
		if idx < len(fila) {
			return fila[idx]
		}
		return ""
	}

	estado := celda(4)
	if estado == "" {
		estado = entity.EstadoActivo
	}
	if estado != entity.EstadoActivo && estado != entity.EstadoInactivo {
		return nil, fmt.Errorf("estado no válido %q", estado)
	}

	return &entity.Afiliado{
		Email:           email,
		FechaNacimiento: fechaNacimiento,
		Nombre:          celda(2),
		Apellidos:       celda(3),
		Estado:          estado,
	}, nil
}
