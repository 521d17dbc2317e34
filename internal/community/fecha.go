package community

import (
	"log"
	"math/rand"
	"time"
)

// Avatar colors assigned to posts, uniformly at random.
var paletaAvatar = []string{"#22c55e", "#3b82f6", "#f97316", "#8b5cf6", "#ec4899", "#06b6d4"}

func RandomAvatarColor() string { return paletaAvatar[rand.Intn(len(paletaAvatar))] }

// AvatarPalette returns the fixed palette.
func AvatarPalette() []string {
	out := make([]string, len(paletaAvatar))
	copy(out, paletaAvatar)
	return out
}

var bogota *time.Location

func init() {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		// Bogotá has no daylight saving, the fixed offset is equivalent.
		log.Printf("tzdata America/Bogota unavailable (%v); using fixed UTC-5", err)
		loc = time.FixedZone("-05", -5*60*60)
	}
	bogota = loc
}

// FormatFecha renders a stored timestamp as DD/MM/YYYY HH:MM in Bogotá local
// time. Timestamps read back without zone information (the driver hands them
// over in the process-local zone) are wall-clock UTC and are reinterpreted as
// such before converting.
func FormatFecha(t time.Time) string {
	if t.Location() == time.Local {
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}
	return t.In(bogota).Format("02/01/2006 15:04")
}
