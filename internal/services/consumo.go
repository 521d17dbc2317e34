package services

import (
	"fmt"
	"strings"

	"github.com/dfcamargo/enerhogar/internal/models"
	"github.com/dfcamargo/enerhogar/internal/validation"

	"gorm.io/gorm"
)

// ChartLimit caps how many readings feed the chart and the report stats.
const ChartLimit = 7

type ConsumoService struct{ DB *gorm.DB }

func NewConsumoService(db *gorm.DB) *ConsumoService { return &ConsumoService{DB: db} }

// ReadingEntry is one bill slot exactly as submitted.
type ReadingEntry struct {
	Mes      string
	Consumo  string
	Promedio string
}

// SaveReadings stores up to three bill readings in one transaction. A slot
// with any blank field is skipped; a non-numeric or negative value in a
// non-blank slot fails the whole submission, persisting nothing. Returns the
// number of rows inserted.
func (s *ConsumoService) SaveReadings(usuarioID uint, entries [3]ReadingEntry) (int, error) {
	v := validation.Violations{}
	var rows []models.Consumo
	for i, e := range entries {
		mes := strings.TrimSpace(e.Mes)
		consumoRaw := strings.TrimSpace(e.Consumo)
		promedioRaw := strings.TrimSpace(e.Promedio)
		if mes == "" || consumoRaw == "" || promedioRaw == "" {
			continue
		}
		consumo := validation.NonNegativeFloat(fmt.Sprintf("consumo_%d", i+1), consumoRaw, v)
		promedio := validation.NonNegativeFloat(fmt.Sprintf("promedio_%d", i+1), promedioRaw, v)
		rows = append(rows, models.Consumo{UsuarioID: usuarioID, Mes: mes, Consumo: consumo, Promedio: promedio})
	}
	if !v.Empty() {
		return 0, v
	}
	if len(rows) == 0 {
		return 0, nil
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("guardar consumos: %w", err)
	}
	return len(rows), nil
}

// History returns up to limit readings for the user. Ascending order feeds
// the chart, descending the report; both pages share this one query.
func (s *ConsumoService) History(usuarioID uint, limit int, descending bool) ([]models.Consumo, error) {
	order := "fecha ASC"
	if descending {
		order = "fecha DESC"
	}
	var out []models.Consumo
	if err := s.DB.Where("usuario_id = ?", usuarioID).Order(order).Limit(limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("leer consumos: %w", err)
	}
	return out, nil
}
