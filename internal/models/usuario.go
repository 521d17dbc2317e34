package models

import "time"

// Usuario is a registered household account. Correo is the login key.
type Usuario struct {
	ID          uint   `gorm:"primaryKey"`
	Nombre      string `gorm:"not null"`
	Apellido    string `gorm:"not null"`
	Telefono    string `gorm:"not null"`
	Direccion   string `gorm:"not null"`
	Correo      string `gorm:"unique;not null;index"`
	Contrasena  string `gorm:"not null"` // bcrypt hash, never plaintext
	Ocupacion   string
	NumPersonas int `gorm:"not null"` // household size
	Estrato     int `gorm:"not null"` // socioeconomic stratum
	CreatedAt   time.Time
}

func (Usuario) TableName() string { return "usuarios" }
