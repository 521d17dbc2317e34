package community

import "math/rand"

// Energy-saving tips shown on the community page. Three are sampled per view;
// nothing about the selection is persisted.
var tips = []string{
	"Plancha tu ropa una sola vez a la semana para ahorrar energía",
	"Desconecta los cargadores cuando no los uses, siguen consumiendo energía",
	"Usa la luz natural durante el día y ahorra en iluminación artificial",
	"Lava la ropa con agua fría cuando sea posible para reducir el consumo",
	"Aprovecha el calor residual: apaga la estufa unos minutos antes de terminar",
	"Sella bien las ventanas y puertas para evitar pérdidas de temperatura",
	"Usa ventiladores en lugar de aire acondicionado cuando sea posible",
	"Descongela regularmente el refrigerador para mejorar su eficiencia",
	"Agrupa las comidas que requieren cocción para aprovechar el calor del horno",
	"Instala bombillas LED, consumen hasta 80% menos que las incandescentes",
	"Usa cortinas gruesas en invierno para mantener el calor dentro",
	"Limpia regularmente los filtros del aire acondicionado",
	"Aprovecha el sol para secar la ropa en lugar de usar secadora",
	"Desconecta los electrodomésticos en standby al final del día",
	"Usa el microondas en lugar del horno para calentar comidas pequeñas",
	"Configura tu termostato 2-3 grados más alto en verano",
	"Cocina con las ollas tapadas para usar menos energía",
	"Llena completamente la lavadora antes de usarla",
	"Instala sensores de movimiento para luces en áreas poco usadas",
	"Usa el modo eco en tus electrodomésticos cuando esté disponible",
	"Mantén el refrigerador a 3-5°C y el congelador a -18°C",
	"Revisa y reemplaza los sellos de puertas y ventanas si están dañados",
	"Usa timers para apagar automáticamente luces y aparatos",
	"Aprovecha el calor del sol para calentar agua en verano",
	"Cierra las cortinas en verano para mantener el calor fuera",
	"Limpia las bobinas del refrigerador para mejorar su eficiencia",
	"Usa ollas del tamaño adecuado para la estufa que estás usando",
	"Evita abrir el horno mientras cocinas, pierde mucho calor",
	"Usa la lavavajillas solo cuando esté llena",
	"Configura el modo de ahorro de energía en tus dispositivos",
}

// SampleTips returns min(n, pool) distinct tips drawn uniformly without
// replacement.
func SampleTips(n int) []string {
	if n > len(tips) {
		n = len(tips)
	}
	if n < 0 {
		n = 0
	}
	idx := rand.Perm(len(tips))[:n]
	out := make([]string, 0, n)
	for _, i := range idx {
		out = append(out, tips[i])
	}
	return out
}

// TipPoolSize reports the size of the fixed pool.
func TipPoolSize() int { return len(tips) }
