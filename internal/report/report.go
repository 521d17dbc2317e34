// Package report computes the consumption classification shown on the chart
// and report pages. It is pure: both views are recomputed from the stored
// readings on every request, nothing derived is persisted.
package report

import (
	"fmt"
	"math"

	"github.com/dfcamargo/enerhogar/internal/models"
)

// Chart point colors.
const (
	ColorVerde    = "#22c55e"
	ColorAmarillo = "#eab308"
	ColorRojo     = "#ef4444"
)

// Gauge positions: center of each third of the 0-100 indicator.
const (
	PosicionVerde    = 16.7
	PosicionAmarillo = 50.0
	PosicionRojo     = 83.3
)

// Level labels as rendered on the report page.
const (
	NivelBajo     = "Bajo (Verde)"
	NivelModerado = "Moderado (Amarillo)"
	NivelAlto     = "Alto (Rojo)"
	NivelSinDatos = "Sin datos"
)

const textoSinDatos = "Aún no has registrado consumos. Por favor, anexa una factura para ver tus reportes."

// ChartData feeds the bar chart: parallel slices, one entry per reading,
// oldest first.
type ChartData struct {
	Labels    []string
	Consumos  []float64
	Promedios []float64
	Colores   []string
}

// PointColor classifies a single chart point against its own bill average.
// The yellow band uses an absolute 1 kWh margin; the report below uses a
// relative 10% margin. The two scales are intentionally kept separate.
func PointColor(consumo, promedio float64) string {
	switch {
	case consumo < promedio:
		return ColorVerde
	case consumo <= promedio+1:
		return ColorAmarillo
	default:
		return ColorRojo
	}
}

// Chart builds chart data from readings ordered oldest first (capped at 7 by
// the caller's query).
func Chart(registros []models.Consumo) ChartData {
	d := ChartData{
		Labels:    make([]string, 0, len(registros)),
		Consumos:  make([]float64, 0, len(registros)),
		Promedios: make([]float64, 0, len(registros)),
		Colores:   make([]string, 0, len(registros)),
	}
	for _, r := range registros {
		d.Labels = append(d.Labels, r.Mes)
		d.Consumos = append(d.Consumos, r.Consumo)
		d.Promedios = append(d.Promedios, r.Promedio)
		d.Colores = append(d.Colores, PointColor(r.Consumo, r.Promedio))
	}
	return d
}

// Informe is the computed report view for the most recent reading.
type Informe struct {
	ConsumoActual     float64
	PromedioActual    float64
	MesActual         string
	Diferencia        float64
	Porcentaje        float64
	Nivel             string
	NivelColor        string
	PosicionIndicador float64
	CostoAdicional    float64
	Texto             string
}

// SinDatos is the fallback view when the user has no readings (or a reading
// is unusable): zeros everywhere, gauge parked at the yellow center.
func SinDatos() Informe {
	return Informe{
		MesActual:         "N/A",
		Nivel:             NivelSinDatos,
		NivelColor:        "amarillo",
		PosicionIndicador: PosicionAmarillo,
		Texto:             textoSinDatos,
	}
}

// Build computes the report from readings ordered newest first. Only the
// latest reading drives the classification; costoKWh comes from config.
func Build(registros []models.Consumo, costoKWh float64) Informe {
	if len(registros) == 0 {
		return SinDatos()
	}
	c := registros[0].Consumo
	a := registros[0].Promedio
	if !finite(c) || !finite(a) || c < 0 || a < 0 {
		return SinDatos()
	}

	inf := Informe{
		ConsumoActual:  c,
		PromedioActual: a,
		MesActual:      registros[0].Mes,
		Diferencia:     c - a,
	}
	if a > 0 {
		inf.Porcentaje = c / a * 100
	}

	// Relative 10% margin, unlike the chart's absolute 1 kWh band.
	switch {
	case c < a:
		inf.Nivel = NivelBajo
		inf.NivelColor = "verde"
		inf.PosicionIndicador = PosicionVerde
	case c <= a+a*0.1:
		inf.Nivel = NivelModerado
		inf.NivelColor = "amarillo"
		inf.PosicionIndicador = PosicionAmarillo
	default:
		inf.Nivel = NivelAlto
		inf.NivelColor = "rojo"
		inf.PosicionIndicador = PosicionRojo
	}
	inf.CostoAdicional = math.Abs(inf.Diferencia) * costoKWh
	inf.Texto = narrativa(inf.NivelColor, inf.MesActual)
	return inf
}

func narrativa(color, mes string) string {
	switch color {
	case "verde":
		return fmt.Sprintf("En %s, tu nivel de consumo se ubicó en la zona verde, lo que indica un consumo eficiente y por debajo de tu promedio histórico. ¡Excelente trabajo!", mes)
	case "amarillo":
		return fmt.Sprintf("En %s, tu nivel de consumo se ubicó en la zona amarilla, lo que indica un comportamiento moderado y estable respecto a tus registros anteriores.", mes)
	default:
		return fmt.Sprintf("En %s, tu nivel de consumo se ubicó en la zona roja, lo que indica un consumo elevado respecto a tu promedio histórico. Te recomendamos revisar tus hábitos energéticos.", mes)
	}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
