package entity

// Catálogos estáticos de consulta. Se cargan por migración y sólo se leen.

// Universidad es una entrada del catálogo de universidades.
type Universidad struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"size:150;not null;uniqueIndex" json:"nombre"`
}

func (Universidad) TableName() string {
	return "universidades"
}

// Cargo es una entrada del catálogo de cargos/puestos.
type Cargo struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"size:150;not null;uniqueIndex" json:"nombre"`
}

func (Cargo) TableName() string {
	return "cargos"
}

// Programa es una entrada del catálogo de programas educativos.
type Programa struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"size:150;not null;uniqueIndex" json:"nombre"`
}

func (Programa) TableName() string {
	return "programas"
}
