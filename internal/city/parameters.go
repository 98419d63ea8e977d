// City quality parameters — the eight 0–100 metrics behind satisfaction.
package city

// Parameters holds the eight named city-quality metrics, each 0–100.
type Parameters struct {
	Entertainment      float64 `json:"entertainment"`
	Security           float64 `json:"security"`
	Sanitation         float64 `json:"sanitation"`
	Transit            float64 `json:"transit"`
	Environment        float64 `json:"environment"`
	Education          float64 `json:"education"`
	DisasterPrevention float64 `json:"disaster_prevention"`
	Tourism            float64 `json:"tourism"`
}

// ParameterNames lists the metrics in their canonical order.
var ParameterNames = []string{
	"entertainment", "security", "sanitation", "transit",
	"environment", "education", "disaster_prevention", "tourism",
}

// NeutralParameters returns every metric at the neutral midpoint.
func NeutralParameters() Parameters {
	return Parameters{
		Entertainment:      50,
		Security:           50,
		Sanitation:         50,
		Transit:            50,
		Environment:        50,
		Education:          50,
		DisasterPrevention: 50,
		Tourism:            50,
	}
}

// Get returns a metric by name. Unknown names return 0.
func (p Parameters) Get(name string) float64 {
	switch name {
	case "entertainment":
		return p.Entertainment
	case "security":
		return p.Security
	case "sanitation":
		return p.Sanitation
	case "transit":
		return p.Transit
	case "environment":
		return p.Environment
	case "education":
		return p.Education
	case "disaster_prevention":
		return p.DisasterPrevention
	case "tourism":
		return p.Tourism
	default:
		return 0
	}
}

// Set assigns a metric by name, clamping to [0,100]. Unknown names are ignored.
func (p *Parameters) Set(name string, v float64) {
	v = Clamp(v, 0, 100)
	switch name {
	case "entertainment":
		p.Entertainment = v
	case "security":
		p.Security = v
	case "sanitation":
		p.Sanitation = v
	case "transit":
		p.Transit = v
	case "environment":
		p.Environment = v
	case "education":
		p.Education = v
	case "disaster_prevention":
		p.DisasterPrevention = v
	case "tourism":
		p.Tourism = v
	}
}

// Clamped returns a copy with every metric clamped to [0,100].
func (p Parameters) Clamped() Parameters {
	for _, name := range ParameterNames {
		p.Set(name, p.Get(name))
	}
	return p
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v to [0,1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
