package variant

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(gene, name, phenotypes string) *Record {
	return &Record{
		GeneSymbol:    NewText(gene),
		Name:          NewText(name),
		PhenotypeList: NewText(phenotypes),
	}
}

func sampleTable() *Table {
	return NewTable("test", []*Record{
		record("CFTR", "NM_000492.4(CFTR):c.1521_1523del (p.Phe508del)", "Cystic fibrosis;CFTR-related disorders"),
		record("BRCA1", "NM_007294.4(BRCA1):c.68_69del (p.Glu23fs)", "Hereditary breast ovarian cancer syndrome"),
		record("CFTR", "NM_000492.4(CFTR):c.1624G>T (p.Gly542Ter)", "Cystic fibrosis"),
		{GeneSymbol: NewText("HBB"), Name: NewText("NM_000518.5(HBB):c.20A>T")},
	})
}

func TestFilterNoOp(t *testing.T) {
	tbl := sampleTable()

	require.Same(t, tbl, Filter(tbl, "", ""))
	require.Same(t, tbl, Filter(tbl, "   ", "\t"))
	require.False(t, Query{Disease: "  "}.Active())
}

func TestFilterDiseaseCaseInsensitive(t *testing.T) {
	tbl := sampleTable()
	out := Filter(tbl, "CYSTIC", "")

	require.Equal(t, 2, out.Len())
	out.Each(func(_ int, r *Record) bool {
		assert.True(t, strings.Contains(strings.ToLower(r.PhenotypeList.ValueOrZero()), "cystic"))
		return true
	})

	// The HBB row has no phenotype list and must never match
	out = Filter(tbl, "a", "")
	out.Each(func(_ int, r *Record) bool {
		assert.True(t, r.PhenotypeList.Valid)
		return true
	})
}

func TestFilterGenePreservesOrder(t *testing.T) {
	tbl := NewTable("test", []*Record{
		record("CFTR", "first", "Cystic fibrosis"),
		record("BRCA1", "second", "Breast cancer"),
		record("CFTR", "third", "Cystic fibrosis"),
	})

	out := Filter(tbl, "", "cftr")
	require.Equal(t, 2, out.Len())

	first, err := out.Row(0)
	require.NoError(t, err)
	third, err := out.Row(1)
	require.NoError(t, err)
	require.Equal(t, "first", first.Name.ValueOrZero())
	require.Equal(t, "third", third.Name.ValueOrZero())

	// The source is untouched
	require.Equal(t, 3, tbl.Len())
}

func TestFilterConjunctive(t *testing.T) {
	tbl := sampleTable()

	require.Equal(t, 1, Filter(tbl, "breast", "brca").Len())
	require.Equal(t, 0, Filter(tbl, "breast", "cftr").Len())

	q := Query{Disease: "breast", Gene: "cftr"}
	require.True(t, q.Active())
	require.Equal(t, 0, q.Apply(tbl).Len())
}

func TestBuildLabelsLimit(t *testing.T) {
	recs := make([]*Record, 600)
	for i := range recs {
		recs[i] = record("G", fmt.Sprintf("variant-%d", i), "disease")
	}
	tbl := NewTable("test", recs)

	choices := BuildLabels(tbl, DefaultLabelLimit, EllipsisAlways)
	require.Len(t, choices, 500)
	for i, c := range choices {
		require.Equal(t, i, c.Index)
		require.Contains(t, c.Label, fmt.Sprintf("variant-%d...", i))
	}

	require.Len(t, BuildLabels(tbl, 0, EllipsisAlways), 500)
	require.Len(t, BuildLabels(NewTable("", nil), 10, EllipsisAlways), 0)
}

func TestLabelEllipsis(t *testing.T) {
	short := record("CFTR", "short", "Cystic fibrosis")
	require.Equal(t, "CFTR | short... | Disease: Cystic fibrosis...", Label(short, EllipsisAlways))
	require.Equal(t, "CFTR | short | Disease: Cystic fibrosis", Label(short, EllipsisWhenTruncated))

	long := record("CFTR", strings.Repeat("n", 50), strings.Repeat("p", 70))
	want := "CFTR | " + strings.Repeat("n", 40) + "... | Disease: " + strings.Repeat("p", 60) + "..."
	require.Equal(t, want, Label(long, EllipsisAlways))
	require.Equal(t, want, Label(long, EllipsisWhenTruncated))

	missing := &Record{}
	require.Equal(t, "nan | nan... | Disease: nan...", Label(missing, EllipsisAlways))
}

func TestLabelCollisionsResolveByIndex(t *testing.T) {
	long := strings.Repeat("x", 45)
	tbl := NewTable("test", []*Record{
		record("GENE", long+"a", "d"),
		record("GENE", long+"b", "d"),
	})

	choices := BuildLabels(tbl, 10, EllipsisAlways)
	require.Equal(t, choices[0].Label, choices[1].Label)

	r, err := Select(tbl, choices[1].Index)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(r.Name.ValueOrZero(), "b"))

	_, err = Select(tbl, 2)
	require.ErrorIs(t, err, ErrNoSuchRow)
	_, err = Select(tbl, -1)
	require.ErrorIs(t, err, ErrNoSuchRow)
}

func TestParseEllipsisMode(t *testing.T) {
	m, err := ParseEllipsisMode("truncated")
	require.NoError(t, err)
	require.Equal(t, EllipsisWhenTruncated, m)

	m, err = ParseEllipsisMode("")
	require.NoError(t, err)
	require.Equal(t, EllipsisAlways, m)

	_, err = ParseEllipsisMode("sometimes")
	require.Error(t, err)
}

func TestProjectEmpty(t *testing.T) {
	r := &Record{RSID: NewRSID(1)}
	require.Empty(t, Project(r))

	for _, p := range Populations() {
		r.SetFrequency(p, NewFrequency(0))
	}
	r.AFOth = NewFrequency(-0.1)
	require.Empty(t, Project(r))
	require.False(t, HasFrequencyData(r))
}

func TestProjectSinglePopulation(t *testing.T) {
	r := &Record{AFEas: ParseFrequency("0.002")}

	points := Project(r)
	require.Len(t, points, 1)
	require.Equal(t, "East Asian", points[0].Region)
	require.Equal(t, 35.0, points[0].Lat)
	require.Equal(t, 110.0, points[0].Lon)
	require.Equal(t, 0.002, points[0].Freq)
	require.NotEmpty(t, points[0].Token)
}

func TestProjectWesternEuropean(t *testing.T) {
	r := &Record{AFNfe: NewFrequency(0.15), AFEas: NewFrequency(0)}

	points := Project(r)
	require.Len(t, points, 1)
	require.Equal(t, NonFinnishEuropean, points[0].Population)
	require.Equal(t, "Western European", points[0].Region)
	require.Equal(t, 0.15, points[0].Freq)
	require.True(t, HasFrequencyData(r))
}

func TestProjectOrderAndClamp(t *testing.T) {
	r := &Record{AFOth: NewFrequency(1.5), AFAfr: NewFrequency(0.01), AFFin: ParseFrequency("not a number")}

	points := Project(r)
	require.Len(t, points, 2)
	require.Equal(t, African, points[0].Population)
	require.Equal(t, Other, points[1].Population)
	require.Equal(t, 1.0, points[1].Clamped())
	require.Equal(t, 1.5, points[1].Freq)
}

func TestSiteTokensAreDistinct(t *testing.T) {
	seen := map[string]Population{}
	for _, s := range Sites {
		require.True(t, s.LatLng().IsValid(), s.Region)
		tok := s.Token()
		if other, ok := seen[tok]; ok {
			t.Errorf("%s and %s share token %s", s.Population, other, tok)
		}
		seen[tok] = s.Population

		require.True(t, strings.HasPrefix(s.Population.Column(), "af_"))
		require.Contains(t, FrequencyColumns(), s.Population.Column())
	}
}

func TestSummarize(t *testing.T) {
	require.Equal(t, Summary{}, Summarize(nil))

	s := Summarize(Project(&Record{AFAfr: NewFrequency(0.1), AFSas: NewFrequency(0.3)}))
	require.Equal(t, 2, s.Populations)
	require.Equal(t, 0.3, s.Max)
	require.InDelta(t, 0.2, s.Mean, 1e-12)
	require.Equal(t, SouthAsian, s.Highest)
}

func TestRSID(t *testing.T) {
	require.Equal(t, "rs113993960", NewRSID(113993960).Display())
	require.Equal(t, "rs113993960", ParseRSID("113993960").Display())
	require.Equal(t, "rs113993960", ParseRSID("113993960.0").Display())

	for _, bad := range []string{"", "rs113993960", "-1", "1.5", "NaN", "abc"} {
		r := ParseRSID(bad)
		require.False(t, r.Valid, bad)
		require.Equal(t, "N/A", r.Display())
	}
}

func TestAssess(t *testing.T) {
	noID := &Record{AFNfe: NewFrequency(0.2)}
	d := Assess(0, noID)
	require.Equal(t, StatusMissingRsid, d.Status)
	require.Empty(t, d.Points)
	require.Nil(t, d.Fallback)

	noFreq := &Record{RSID: NewRSID(80357906)}
	d = Assess(1, noFreq)
	require.Equal(t, StatusNoFrequencyData, d.Status)
	require.NotNil(t, d.Fallback)
	require.Len(t, d.Fallback.Coverage, 3)
	require.Equal(t, "rs80357906", d.RSID)

	ok := &Record{RSID: NewRSID(113993960), AFNfe: NewFrequency(0.015)}
	d = Assess(2, ok)
	require.Equal(t, StatusOK, d.Status)
	require.Len(t, d.Points, 1)
	require.Equal(t, 1, d.Summary.Populations)
}

func TestFallbackIsACopy(t *testing.T) {
	fb := Fallback()
	fb.Coverage[0].Coverage = "changed"
	require.Equal(t, CoverageHigh, Fallback().Coverage[0].Coverage)

	classes := map[string]bool{}
	for _, c := range Fallback().Coverage {
		classes[c.Coverage] = true
	}
	require.Equal(t, map[string]bool{CoverageHigh: true, CoverageRecorded: true, CoverageUnderreported: true}, classes)
}
