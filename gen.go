package telecodec

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Generator produces synthetic telemetry records with the value ranges and
// textual formatting of the real tracker firmware. It is deterministic for
// a given seed, which keeps batch tests reproducible, and is not safe for
// concurrent use; the pool gives each worker its own Generator.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator returns a seeded Generator.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed)),
		now: time.Now,
	}
}

var doorStates = [4]string{"D", "O", "C", "T"}

// Record generates one synthetic record. All values are already formatted
// to the precision the device reports: 2 decimals for temperature,
// humidity and altitude, 4 for pressure and coordinates, 1 for speed and
// hdop, 2 for heading, 4 for each accelerometer component.
func (g *Generator) Record() Record {
	r := g.rng
	t := g.now().Add(-time.Duration(r.IntN(61)) * time.Minute)

	return Record{
		MSISDN:      fmt.Sprintf("39360050%d", 4800+r.IntN(200)),
		ISO6346:     fmt.Sprintf("LMCU%07d", 1+r.IntN(999999)),
		Time:        t.Format("020106 150405.0"),
		RSSI:        fmt.Sprintf("%d", 15+r.IntN(21)),
		CGI:         "999-01-1-31D41",
		BLEM:        fmt.Sprintf("%d", r.IntN(2)),
		BatSOC:      fmt.Sprintf("%d", 76+r.IntN(21)),
		Acc: fmt.Sprintf("%.4f %.4f %.4f",
			-993.9+r.Float64()*20,
			-27.1+r.Float64()*10,
			-52.0+r.Float64()*10),
		Temperature: fmt.Sprintf("%.2f", 17.0+r.Float64()*10),
		Humidity:    fmt.Sprintf("%.2f", 61.0+r.Float64()*20),
		Pressure:    fmt.Sprintf("%.4f", 1002.4+r.Float64()*20),
		Door:        doorStates[r.IntN(len(doorStates))],
		GNSS:        fmt.Sprintf("%d", r.IntN(2)),
		Latitude:    fmt.Sprintf("%.4f", 31.61+r.Float64()*0.5),
		Longitude:   fmt.Sprintf("%.4f", 28.49+r.Float64()*0.5),
		Altitude:    fmt.Sprintf("%.2f", 39.5+r.Float64()*20),
		Speed:       fmt.Sprintf("%.1f", r.Float64()*40),
		Heading:     fmt.Sprintf("%.2f", r.Float64()*360),
		NSat:        fmt.Sprintf("%02d", 4+r.IntN(9)),
		HDOP:        fmt.Sprintf("%.1f", 0.5+r.Float64()*5),
	}
}
