package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dfcamargo/enerhogar/internal/models"
	"github.com/dfcamargo/enerhogar/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures do not disclose which accounts exist.
	ErrInvalidCredentials = errors.New("correo o contraseña incorrectos")
	ErrDuplicateEmail     = errors.New("el correo ya está registrado")
)

type AuthService struct{ DB *gorm.DB }

func NewAuthService(db *gorm.DB) *AuthService { return &AuthService{DB: db} }

// Login verifies credentials and returns the matching user. Password
// verification goes through bcrypt, a constant-time salted-hash compare.
func (s *AuthService) Login(correo, contrasena string) (*models.Usuario, error) {
	var u models.Usuario
	if err := s.DB.Where("correo = ?", strings.TrimSpace(correo)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Contrasena), []byte(contrasena)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// ByCorreo resolves the current user row from the session email. Every gated
// handler that needs the user id goes through here.
func (s *AuthService) ByCorreo(correo string) (*models.Usuario, error) {
	var u models.Usuario
	if err := s.DB.Where("correo = ?", correo).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	return &u, nil
}

// RegisterInput carries raw form values; numeric fields are validated here.
type RegisterInput struct {
	Nombre      string
	Apellido    string
	Telefono    string
	Direccion   string
	Correo      string
	Contrasena  string
	Ocupacion   string // optional
	NumPersonas string
	Estrato     string
}

// Register validates the input, hashes the password, and creates the user.
// A uniqueness violation on correo maps to ErrDuplicateEmail.
func (s *AuthService) Register(in RegisterInput) (uint, error) {
	v := validation.Violations{}
	validation.Required("nombre", in.Nombre, v)
	validation.Required("apellido", in.Apellido, v)
	validation.Required("telefono", in.Telefono, v)
	validation.Required("direccion", in.Direccion, v)
	validation.Required("correo", in.Correo, v)
	validation.Required("contrasena", in.Contrasena, v)
	numPersonas := validation.PositiveInt("num_personas", in.NumPersonas, v)
	estrato := validation.PositiveInt("estrato", in.Estrato, v)
	if !v.Empty() {
		return 0, v
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash contraseña: %w", err)
	}
	u := models.Usuario{
		Nombre:      strings.TrimSpace(in.Nombre),
		Apellido:    strings.TrimSpace(in.Apellido),
		Telefono:    strings.TrimSpace(in.Telefono),
		Direccion:   strings.TrimSpace(in.Direccion),
		Correo:      strings.TrimSpace(in.Correo),
		Contrasena:  string(hash),
		Ocupacion:   strings.TrimSpace(in.Ocupacion),
		NumPersonas: numPersonas,
		Estrato:     estrato,
	}
	if err := s.DB.Create(&u).Error; err != nil {
		if isDuplicate(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("crear usuario: %w", err)
	}
	return u.ID, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
