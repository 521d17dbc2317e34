package models

import "time"

// MensajeComunidad is a community board post. UsuarioID is nullable: the
// denormalized NombreUsuario keeps the author readable even if the account
// cannot be resolved from the session.
type MensajeComunidad struct {
	ID            uint      `gorm:"primaryKey"`
	UsuarioID     *uint     `gorm:"index"`
	NombreUsuario string    `gorm:"size:255;not null"`
	Mensaje       string    `gorm:"type:text;not null"`
	ColorAvatar   string    `gorm:"size:7;not null"`
	Icono         string    `gorm:"size:50;not null;default:'person'"`
	Fecha         time.Time `gorm:"not null;index;autoCreateTime"`
}

func (MensajeComunidad) TableName() string { return "mensajes_comunidad" }
