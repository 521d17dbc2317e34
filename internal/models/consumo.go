package models

import "time"

// Consumo is one monthly bill reading: the billed consumption and the
// reference average from the bill, in kWh. Rows are append-only.
type Consumo struct {
	ID        uint    `gorm:"primaryKey"`
	UsuarioID uint    `gorm:"not null;index"`
	Usuario   Usuario `gorm:"foreignKey:UsuarioID"`
	Mes       string  `gorm:"not null"`
	Consumo   float64 `gorm:"not null"`
	Promedio  float64 `gorm:"not null"`
	// Fecha is assigned by the server at insert time so recency ordering
	// is stable; it is never client-supplied.
	Fecha time.Time `gorm:"not null;index;autoCreateTime"`
}

func (Consumo) TableName() string { return "consumos" }
