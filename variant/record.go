// Package variant holds the in-memory model of a ClinVar variant table joined
// with gnomAD population allele frequencies, and the pure transformations the
// dashboard runs over it: filtering, label building, selection and projection
// of frequencies onto a world map.
package variant

// Column names of the input table.
const (
	ColumnRSID                 = "rsid"
	ColumnName                 = "Name"
	ColumnGeneSymbol           = "GeneSymbol"
	ColumnPhenotypeList        = "PhenotypeList"
	ColumnClinicalSignificance = "ClinicalSignificance"
)

// RequiredColumns must all be present in the header of an input table. The
// af_* frequency columns are optional; a missing column reads as missing data.
var RequiredColumns = []string{
	ColumnRSID,
	ColumnName,
	ColumnGeneSymbol,
	ColumnPhenotypeList,
	ColumnClinicalSignificance,
}

// FrequencyColumns lists the af_* column of every population in display
// order.
func FrequencyColumns() []string {
	out := make([]string, 0, len(Sites))
	for _, s := range Sites {
		out = append(out, s.Population.Column())
	}

	return out
}

// Record is one row of the variant table.
type Record struct {
	RSID                 RSID `csv:"rsid" json:"rsid"`
	Name                 Text `csv:"Name" json:"Name"`
	GeneSymbol           Text `csv:"GeneSymbol" json:"GeneSymbol"`
	PhenotypeList        Text `csv:"PhenotypeList" json:"PhenotypeList"`
	ClinicalSignificance Text `csv:"ClinicalSignificance" json:"ClinicalSignificance"`

	AFAfr Frequency `csv:"af_afr" json:"af_afr"`
	AFAmr Frequency `csv:"af_amr" json:"af_amr"`
	AFEas Frequency `csv:"af_eas" json:"af_eas"`
	AFNfe Frequency `csv:"af_nfe" json:"af_nfe"`
	AFFin Frequency `csv:"af_fin" json:"af_fin"`
	AFSas Frequency `csv:"af_sas" json:"af_sas"`
	AFAsj Frequency `csv:"af_asj" json:"af_asj"`
	AFOth Frequency `csv:"af_oth" json:"af_oth"`
}

// Frequency returns the allele frequency recorded for population p.
func (r *Record) Frequency(p Population) Frequency {
	switch p {
	case African:
		return r.AFAfr
	case Latino:
		return r.AFAmr
	case EastAsian:
		return r.AFEas
	case NonFinnishEuropean:
		return r.AFNfe
	case Finnish:
		return r.AFFin
	case SouthAsian:
		return r.AFSas
	case AshkenaziJewish:
		return r.AFAsj
	case Other:
		return r.AFOth
	}

	return Frequency{}
}

// SetFrequency is the inverse of Frequency. It exists for building records
// in code; loaded records are never modified.
func (r *Record) SetFrequency(p Population, f Frequency) {
	switch p {
	case African:
		r.AFAfr = f
	case Latino:
		r.AFAmr = f
	case EastAsian:
		r.AFEas = f
	case NonFinnishEuropean:
		r.AFNfe = f
	case Finnish:
		r.AFFin = f
	case SouthAsian:
		r.AFSas = f
	case AshkenaziJewish:
		r.AFAsj = f
	case Other:
		r.AFOth = f
	}
}
