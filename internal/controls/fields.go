package controls

import (
	"math"
	"strconv"

	"github.com/san-kum/ksdash/internal/config"
)

// param is one editable solver input, named by its wire key.
type param struct {
	name    string
	step    float64
	integer bool
}

var params = []param{
	{"length", 1, false},
	{"grid_points", 16, true},
	{"duration", 10, false},
	{"dt", 0.05, false},
	{"viscosity", 0.1, false},
	{"epochs", 500, true},
	{"learning_rate", 1e-4, false},
}

func (f param) get(p *config.Params) float64 {
	switch f.name {
	case "length":
		return p.Length
	case "grid_points":
		return float64(p.GridPoints)
	case "duration":
		return p.Duration
	case "dt":
		return p.Dt
	case "viscosity":
		return p.Viscosity
	case "epochs":
		return float64(p.Epochs)
	case "learning_rate":
		return p.LearningRate
	}
	return 0
}

func (f param) set(p *config.Params, v float64) {
	switch f.name {
	case "length":
		p.Length = v
	case "grid_points":
		p.GridPoints = int(math.Round(v))
	case "duration":
		p.Duration = v
	case "dt":
		p.Dt = v
	case "viscosity":
		p.Viscosity = v
	case "epochs":
		p.Epochs = int(math.Round(v))
	case "learning_rate":
		p.LearningRate = v
	}
}

func (f param) format(p *config.Params) string {
	if f.integer {
		return strconv.Itoa(int(f.get(p)))
	}
	return strconv.FormatFloat(f.get(p), 'g', 6, 64)
}
