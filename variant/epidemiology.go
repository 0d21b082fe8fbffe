package variant

// Coverage classes for the research-coverage map shown when a variant has no
// frequency data.
const (
	CoverageHigh          = "High Recorded"
	CoverageRecorded      = "Recorded"
	CoverageUnderreported = "Under-reported"
)

// CoverageRegion is a coarse area on the research-coverage map.
type CoverageRegion struct {
	Region   string  `json:"region"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Coverage string  `json:"coverage"`
}

// FallbackContent is shown instead of a frequency map when a variant has an
// rsid but no population-frequency data. It is illustrative text and does
// not depend on the variant.
type FallbackContent struct {
	Headline string           `json:"headline"`
	Reasons  []FallbackReason `json:"reasons"`
	Coverage []CoverageRegion `json:"coverage"`
}

type FallbackReason struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

var fallback = FallbackContent{
	Headline: "gnomAD has no frequency record for this variant.",
	Reasons: []FallbackReason{
		{
			Title: "Rarity",
			Text:  "Pathogenic variants are usually extremely rare. gnomAD covers roughly 140,000 people and can still miss them.",
		},
		{
			Title: "Population bias",
			Text:  "Public databases such as gnomAD are dominated by European samples (over half); Asian and American populations are comparatively under-sampled.",
		},
		{
			Title: "Technical limits",
			Text:  "Some complex indels and structural variants are hard to call accurately in standard sequencing pipelines.",
		},
	},
	Coverage: []CoverageRegion{
		{Region: "Europe & North America", Lat: 50, Lon: -30, Coverage: CoverageHigh},
		{Region: "East Asia", Lat: 35, Lon: 110, Coverage: CoverageRecorded},
		{Region: "Africa, South America & Oceania", Lat: -10, Lon: 20, Coverage: CoverageUnderreported},
	},
}

// Fallback returns a copy of the static no-frequency-data content.
func Fallback() FallbackContent {
	out := fallback
	out.Reasons = append([]FallbackReason(nil), fallback.Reasons...)
	out.Coverage = append([]CoverageRegion(nil), fallback.Coverage...)
	return out
}
