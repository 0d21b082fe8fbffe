package variant

import (
	"math"

	"github.com/montanaflynn/stats"
)

// PopulationPoint is one population frequency placed on the map.
type PopulationPoint struct {
	Population Population `json:"population"`
	Region     string     `json:"region"`
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	Freq       float64    `json:"freq"`
	Token      string     `json:"token"`
}

// Clamped is Freq limited to [0,1], for sizing and colouring.
func (p PopulationPoint) Clamped() float64 {
	return math.Max(0, math.Min(1, p.Freq))
}

// Project places each of r's population frequencies at its site. Missing
// frequencies count as 0, and points with a frequency <= 0 are left out. An
// empty result means the variant has no population-frequency data.
func Project(r *Record) []PopulationPoint {
	out := make([]PopulationPoint, 0, len(Sites))
	if r == nil {
		return out
	}

	for _, site := range Sites {
		freq := r.Frequency(site.Population).OrZero()
		if freq <= 0 {
			continue
		}

		out = append(out, PopulationPoint{
			Population: site.Population,
			Region:     site.Region,
			Lat:        site.Lat,
			Lon:        site.Lon,
			Freq:       freq,
			Token:      site.Token(),
		})
	}

	return out
}

// HasFrequencyData reports whether any population frequency of r is positive.
func HasFrequencyData(r *Record) bool {
	if r == nil {
		return false
	}

	for _, p := range Populations() {
		if r.Frequency(p).Positive() {
			return true
		}
	}

	return false
}

// Summary describes a projection as a whole.
type Summary struct {
	Populations int        `json:"populations"`
	Max         float64    `json:"max"`
	Mean        float64    `json:"mean"`
	Highest     Population `json:"highest,omitempty"`
}

// Summarize reports the spread of frequencies across points. The zero
// Summary describes an empty projection.
func Summarize(points []PopulationPoint) Summary {
	if len(points) == 0 {
		return Summary{}
	}

	data := make(stats.Float64Data, 0, len(points))
	for _, p := range points {
		data = append(data, p.Freq)
	}

	out := Summary{Populations: len(points)}

	// Errors only arise on empty input, which is excluded above.
	out.Max, _ = data.Max()
	out.Mean, _ = data.Mean()

	for _, p := range points {
		if p.Freq == out.Max {
			out.Highest = p.Population
			break
		}
	}

	return out
}
