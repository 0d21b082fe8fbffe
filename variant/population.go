package variant

import (
	"github.com/golang/geo/s2"
)

// Population is a gnomAD ancestry group.
type Population string

const (
	African            Population = "afr"
	Latino             Population = "amr"
	EastAsian          Population = "eas"
	NonFinnishEuropean Population = "nfe"
	Finnish            Population = "fin"
	SouthAsian         Population = "sas"
	AshkenaziJewish    Population = "asj"
	Other              Population = "oth"
)

// Column is the name of the input column carrying this population's
// frequency.
func (p Population) Column() string {
	return "af_" + string(p)
}

// Site places a population on the map. The coordinates are representative
// centroids chosen for display and are not derived from genomic data.
type Site struct {
	Population Population
	Region     string
	Lat        float64
	Lon        float64
}

// LatLng returns the site as an S2 coordinate.
func (s Site) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(s.Lat, s.Lon)
}

// Token is a short, stable identifier of the site's location, usable as a
// DOM or JSON key.
func (s Site) Token() string {
	return s2.CellIDFromLatLng(s.LatLng()).Parent(siteCellLevel).ToToken()
}

// Level 10 cells are roughly 10km across; far finer than any two sites.
const siteCellLevel = 10

// Sites lists every population in display order.
var Sites = []Site{
	{African, "African", 0, 20},
	{Latino, "Latino/Admixed American", 15, -90},
	{EastAsian, "East Asian", 35, 110},
	{NonFinnishEuropean, "Western European", 48, 5},
	{Finnish, "Finnish", 62, 26},
	{SouthAsian, "South Asian", 22, 78},
	{AshkenaziJewish, "Ashkenazi Jewish", 32, 35},
	{Other, "Other", -20, 140},
}

// Populations lists every population key in display order.
func Populations() []Population {
	out := make([]Population, 0, len(Sites))
	for _, s := range Sites {
		out = append(out, s.Population)
	}

	return out
}

// SiteOf looks up the map site for p.
func SiteOf(p Population) (Site, bool) {
	for _, s := range Sites {
		if s.Population == p {
			return s, true
		}
	}

	return Site{}, false
}
