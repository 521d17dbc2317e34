package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dfcamargo/enerhogar/internal/community"
	"github.com/dfcamargo/enerhogar/internal/models"

	"gorm.io/gorm"
)

// RecentMessagesLimit caps the community board listing.
const RecentMessagesLimit = 50

var ErrMensajeVacio = errors.New("el mensaje no puede estar vacío")

type ComunidadService struct{ DB *gorm.DB }

func NewComunidadService(db *gorm.DB) *ComunidadService { return &ComunidadService{DB: db} }

// Post stores a message. usuarioID may be nil when the session email no
// longer resolves to an account; the post still carries the display name.
// The avatar color is drawn uniformly from the fixed palette, per post.
func (s *ComunidadService) Post(usuarioID *uint, nombre, texto string) (*models.MensajeComunidad, error) {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return nil, ErrMensajeVacio
	}
	if strings.TrimSpace(nombre) == "" {
		nombre = "Usuario"
	}
	m := models.MensajeComunidad{
		UsuarioID:     usuarioID,
		NombreUsuario: nombre,
		Mensaje:       texto,
		ColorAvatar:   community.RandomAvatarColor(),
		Icono:         "person",
	}
	if err := s.DB.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("guardar mensaje: %w", err)
	}
	return &m, nil
}

// Recent returns the newest messages, strictly descending by fecha.
func (s *ComunidadService) Recent() ([]models.MensajeComunidad, error) {
	var out []models.MensajeComunidad
	if err := s.DB.Order("fecha DESC, id DESC").Limit(RecentMessagesLimit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("leer mensajes: %w", err)
	}
	return out, nil
}
