package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annotatorB/schubert-dances/diag"
	"github.com/annotatorB/schubert-dances/model"
)

// piece builds a measure table of n measures with the synthetic boundary
// markers already written, as the aggregator leaves it.
func piece(n int) []model.MeasureInfo {
	infos := make([]model.MeasureInfo, n)
	for mc := range infos {
		infos[mc].MC = mc
		infos[mc].MN = mc + 1
	}
	infos[0].Repeat = model.MarkerFirst
	infos[n-1].Repeat = model.MarkerLast
	return infos
}

func TestResolveRepeatsExplicitPair(t *testing.T) {
	infos := piece(6)
	infos[2].Repeat = model.MarkerStart
	infos[4].Repeat = model.MarkerEnd

	var d diag.List
	spans := ResolveRepeats(infos, &d)

	assert.Equal(t, []Span{{2, 4}}, spans)
	assert.Equal(t, 0, d.Len())
}

func TestResolveRepeatsImplicitStartAtBeginning(t *testing.T) {
	infos := piece(4)
	infos[1].Repeat = model.MarkerEnd

	var d diag.List
	spans := ResolveRepeats(infos, &d)

	assert.Equal(t, []Span{{0, 1}}, spans)
	assert.Equal(t, 1, len(d.Filter(diag.Advisory)))
}

func TestResolveRepeatsSectionBreakStartsRepeat(t *testing.T) {
	infos := piece(6)
	infos[2].Repeat = model.MarkerSection
	infos[4].Repeat = model.MarkerEnd

	var d diag.List
	spans := ResolveRepeats(infos, &d)

	assert.Equal(t, []Span{{3, 4}}, spans)
}

func TestResolveRepeatsLastMeasureCloses(t *testing.T) {
	infos := piece(5)
	infos[2].Repeat = model.MarkerStart

	var d diag.List
	spans := ResolveRepeats(infos, &d)

	assert.Equal(t, []Span{{2, 4}}, spans)
	assert.Equal(t, 1, len(d.Filter(diag.Advisory)))
}

func TestResolveRepeatsNestedFailsClosed(t *testing.T) {
	infos := piece(8)
	infos[1].Repeat = model.MarkerStart
	infos[3].Repeat = model.MarkerStart
	infos[5].Repeat = model.MarkerEnd

	var d diag.List
	spans := ResolveRepeats(infos, &d)

	assert.Empty(t, spans)
	assert.True(t, d.Has(diag.Structural))
}

func TestResolveRepeatsUnmatchedEnd(t *testing.T) {
	infos := piece(6)
	infos[1].Repeat = model.MarkerEnd
	infos[3].Repeat = model.MarkerEnd

	var d diag.List
	spans := ResolveRepeats(infos, &d)

	// implicit start covers the first end, the second has no match
	assert.Equal(t, []Span{{0, 1}}, spans)
	assert.True(t, d.Has(diag.Structural))
}

func TestGroupVoltasEqualLengths(t *testing.T) {
	infos := piece(8)
	infos[1].Repeat = model.MarkerStart
	infos[4].Repeat = model.MarkerEnd
	infos[3].VoltaLen = 2 // covers 3-4
	infos[5].VoltaLen = 2 // covers 5-6

	var d diag.List
	spans := ResolveRepeats(infos, &d)
	groups := GroupVoltas(infos, spans, &d)

	assert.Len(t, groups, 1)
	assert.Equal(t, 0, groups[0].SpanIdx)
	assert.Equal(t, []Volta{{3, 4}, {5, 6}}, groups[0].Voltas)
	assert.Equal(t, Span{1, 6}, spans[0])
	assert.Equal(t, 0, d.Len())

	assert.Equal(t, 1, infos[3].Volta)
	assert.Equal(t, 1, infos[4].Volta)
	assert.Equal(t, 2, infos[5].Volta)
	assert.Equal(t, 2, infos[6].Volta)
	assert.Equal(t, 0, infos[2].Volta)
}

func TestGroupVoltasUnequalLengthsOneWarning(t *testing.T) {
	infos := piece(9)
	infos[1].Repeat = model.MarkerStart
	infos[4].Repeat = model.MarkerEnd
	infos[3].VoltaLen = 2 // covers 3-4
	infos[5].VoltaLen = 1 // covers 5

	var d diag.List
	spans := ResolveRepeats(infos, &d)
	GroupVoltas(infos, spans, &d)

	assert.Equal(t, 1, len(d.Filter(diag.Advisory)))
	assert.False(t, d.Has(diag.Structural))
}

func TestGroupVoltasDetachedGroup(t *testing.T) {
	infos := piece(6)
	infos[2].VoltaLen = 1 // no repeat ends at mc 2

	var d diag.List
	groups := GroupVoltas(infos, nil, &d)

	assert.Len(t, groups, 1)
	assert.Equal(t, -1, groups[0].SpanIdx)
	assert.True(t, d.Has(diag.Structural))
}

func TestGroupVoltasStartRepeatInside(t *testing.T) {
	infos := piece(6)
	infos[1].Repeat = model.MarkerStart
	infos[3].Repeat = model.MarkerEnd
	infos[1].VoltaLen = 3 // covers 1-3, including the startRepeat

	var d diag.List
	spans := ResolveRepeats(infos, &d)
	GroupVoltas(infos, spans, &d)

	assert.True(t, d.Has(diag.Structural))
}

func TestBuildSectionsSplitsAtDoubleBar(t *testing.T) {
	infos := piece(6)
	infos[2].Barline = "double"

	var d diag.List
	sections, supers, playOrder := BuildSections(infos, nil, nil, nil, &d)

	assert.Len(t, sections, 2)
	assert.Equal(t, 0, sections[0].FirstMC)
	assert.Equal(t, 2, sections[0].LastMC)
	assert.Equal(t, 3, sections[1].FirstMC)
	assert.Equal(t, 5, sections[1].LastMC)
	assert.Equal(t, [][]int{{0, 1}}, supers)
	assert.Equal(t, 0, sections[0].SubsectionOf)
	assert.Equal(t, 0, sections[1].SubsectionOf)
	assert.Equal(t, []int{0, 1}, playOrder)
}

func TestBuildSectionsBoundaryBarlineDoesNotSplit(t *testing.T) {
	infos := piece(4)
	infos[3].Barline = "double"

	var d diag.List
	sections, supers, _ := BuildSections(infos, nil, nil, nil, &d)

	assert.Len(t, sections, 1)
	assert.Empty(t, supers)
}

// Eight measures: pickup-free opening bar, then a repeated passage with two
// one-measure endings, then a closing bar.
func TestFullStructureScenario(t *testing.T) {
	infos := piece(8)
	infos[1].Repeat = model.MarkerStart
	infos[5].Repeat = model.MarkerEnd
	infos[5].VoltaLen = 1
	infos[6].VoltaLen = 1

	var d diag.List
	spans := ResolveRepeats(infos, &d)
	groups := GroupVoltas(infos, spans, &d)
	sections, supers, playOrder := BuildSections(infos, spans, groups, nil, &d)
	ComputeNext(infos, spans, groups)

	assert.Equal(t, []Span{{1, 6}}, spans)
	assert.Len(t, sections, 3)
	assert.Equal(t, [2]int{0, 0}, [2]int{sections[0].FirstMC, sections[0].LastMC})
	assert.Equal(t, [2]int{1, 6}, [2]int{sections[1].FirstMC, sections[1].LastMC})
	assert.Equal(t, [2]int{7, 7}, [2]int{sections[2].FirstMC, sections[2].LastMC})
	assert.True(t, sections[1].Repeated)
	assert.Equal(t, [][2]int{{5, 5}, {6, 6}}, sections[1].Voltas)
	assert.Empty(t, supers)
	assert.Equal(t, []int{0, 1, 1, 2}, playOrder)

	// every measure belongs to exactly one section
	for mc := range infos {
		owners := 0
		for _, sec := range sections {
			if sec.Contains(mc) {
				owners++
			}
		}
		assert.Equal(t, 1, owners, "mc %d", mc)
	}

	assert.Equal(t, []int{1}, infos[0].Next)
	assert.Equal(t, []int{5, 6}, infos[4].Next)
	assert.Equal(t, []int{1}, infos[5].Next)
	assert.Equal(t, []int{7}, infos[6].Next)
	assert.Nil(t, infos[7].Next)
}

func TestComputeNextPlainRepeat(t *testing.T) {
	infos := piece(5)
	infos[1].Repeat = model.MarkerStart
	infos[3].Repeat = model.MarkerEnd

	var d diag.List
	spans := ResolveRepeats(infos, &d)
	ComputeNext(infos, spans, nil)

	assert.Equal(t, []int{1, 4}, infos[3].Next)
	assert.Equal(t, []int{3}, infos[2].Next)
	assert.Nil(t, infos[4].Next)
}
