// Package influence synthesizes the eight city parameters from spatial
// influence fields sampled at residential positions. The default field is
// deterministic opensimplex noise per parameter, layered with facility
// proximity effects.
package influence

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/seralo/citysim/internal/city"
	"github.com/seralo/citysim/internal/facility"
)

// Field samples the ambient value of one city parameter at a position.
// The placement subsystem may provide its own; NoiseField is the built-in.
type Field interface {
	Sample(parameter string, p facility.Point) float64
}

// NoiseField is a deterministic per-parameter noise field. Same seed,
// same samples — the simulation stays reproducible.
type NoiseField struct {
	noises map[string]opensimplex.Noise
}

// noiseFrequency softens spatial variation so adjacent lots read alike.
const noiseFrequency = 0.08

// noiseSpread is how far samples deviate from the neutral midpoint.
const noiseSpread = 15.0

// NewNoiseField builds one independent noise layer per parameter.
func NewNoiseField(seed int64) *NoiseField {
	noises := make(map[string]opensimplex.Noise, len(city.ParameterNames))
	for i, name := range city.ParameterNames {
		noises[name] = opensimplex.NewNormalized(seed + int64(i))
	}
	return &NoiseField{noises: noises}
}

// Sample returns the ambient parameter value at p, centered on neutral 50.
func (f *NoiseField) Sample(parameter string, p facility.Point) float64 {
	n, ok := f.noises[parameter]
	if !ok {
		return 50
	}
	v := n.Eval2(float64(p.X)*noiseFrequency, float64(p.Y)*noiseFrequency) // [0,1]
	return city.Clamp(50+(v-0.5)*2*noiseSpread, 0, 100)
}

// Synthesize recomputes all eight parameters: for each residential
// facility, the ambient field plus nearby facility influence; the city
// value is the mean over residences. With no residences every parameter
// decays toward neutral.
func Synthesize(field Field, prev city.Parameters, facs []facility.Facility, reg *facility.Registry) city.Parameters {
	var residences []facility.Facility
	for _, f := range facs {
		if !f.Active {
			continue
		}
		if spec, ok := reg.Lookup(f.Type); ok && spec.Category == facility.CategoryResidential {
			residences = append(residences, f)
		}
	}

	var out city.Parameters
	if len(residences) == 0 {
		// No one lives here — parameters drift back toward neutral.
		for _, name := range city.ParameterNames {
			v := prev.Get(name)
			out.Set(name, v+(50-v)*0.25)
		}
		return out
	}

	for _, name := range city.ParameterNames {
		var sum float64
		for _, res := range residences {
			sum += sampleAt(field, name, res.Position, facs, reg)
		}
		out.Set(name, sum/float64(len(residences)))
	}
	return out
}

// sampleAt is the ambient field value plus distance-decayed facility
// influence at one position.
func sampleAt(field Field, parameter string, pos facility.Point, facs []facility.Facility, reg *facility.Registry) float64 {
	v := field.Sample(parameter, pos)
	for _, f := range facs {
		if !f.Active {
			continue
		}
		spec, ok := reg.Lookup(f.Type)
		if !ok || spec.InfluenceRadius <= 0 {
			continue
		}
		strength, ok := spec.Influence[parameter]
		if !ok {
			continue
		}
		d := chebyshev(pos, f.Position)
		if d > spec.InfluenceRadius {
			continue
		}
		// Linear falloff: full strength on top of the facility, zero past the radius.
		falloff := 1 - float64(d)/float64(spec.InfluenceRadius+1)
		v += strength * falloff
	}
	return city.Clamp(v, 0, 100)
}

func chebyshev(a, b facility.Point) int {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	return int(math.Max(dx, dy))
}
