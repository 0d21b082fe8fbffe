package variant

// Status classifies what can be shown for a selected record.
type Status string

const (
	StatusOK              Status = "ok"
	StatusMissingRsid     Status = "missing-rsid"
	StatusNoFrequencyData Status = "no-frequency-data"
)

// Detail is everything the detail view needs about one record.
type Detail struct {
	Index    int               `json:"index"`
	Record   *Record           `json:"record"`
	RSID     string            `json:"rsid"`
	Status   Status            `json:"status"`
	Points   []PopulationPoint `json:"points"`
	Summary  Summary           `json:"summary"`
	Fallback *FallbackContent  `json:"fallback,omitempty"`
}

// Assess builds the Detail for the record at index. Records without an rsid
// get no frequency section at all. Records with an rsid but no positive
// frequency get the static fallback content.
func Assess(index int, r *Record) Detail {
	d := Detail{
		Index:  index,
		Record: r,
		RSID:   r.RSID.Display(),
		Points: []PopulationPoint{},
	}

	if !r.RSID.Valid {
		d.Status = StatusMissingRsid
		return d
	}

	d.Points = Project(r)
	if len(d.Points) == 0 {
		fb := Fallback()
		d.Status = StatusNoFrequencyData
		d.Fallback = &fb
		return d
	}

	d.Status = StatusOK
	d.Summary = Summarize(d.Points)

	return d
}
