package measure

import (
	"github.com/annotatorB/schubert-dances/diag"
	"github.com/annotatorB/schubert-dances/frac"
	"github.com/annotatorB/schubert-dances/model"
)

// Aggregate merges the per-staff tables into the authoritative measure
// table. Staff 1 wins; values it lacks are backfilled from lower staves
// (with a warning, since staff 1 is expected to be structurally complete).
// Voice counts are summed across staves. Key and time signature are then
// forward-filled and the synthetic firstMeasure/lastMeasure markers are
// written.
func Aggregate(staves [][]Row, d *diag.List) []model.MeasureInfo {
	if len(staves) == 0 {
		return nil
	}
	first := staves[0]
	n := len(first)
	for i, st := range staves[1:] {
		if len(st) != n {
			d.Structuralf(-1, "staff %d has %d measures, staff 1 has %d", i+2, len(st), n)
		}
	}

	infos := make([]model.MeasureInfo, n)
	filled := make([]Row, n)
	for mc := 0; mc < n; mc++ {
		filled[mc] = first[mc]
		for si := 1; si < len(staves); si++ {
			if mc >= len(staves[si]) {
				continue
			}
			backfill(&filled[mc], staves[si][mc], si+1, d)
			filled[mc].Info.Voices += staves[si][mc].Info.Voices
		}
		infos[mc] = filled[mc].Info
	}

	carrySignatures(infos, filled, d)

	// actual duration defaults to the nominal bar length
	for mc := range infos {
		if infos[mc].ActDur.IsZero() {
			infos[mc].ActDur = infos[mc].TimeSig
		}
	}

	writeSyntheticMarkers(infos, d)
	return infos
}

func backfill(dst *Row, src Row, staffID int, d *diag.List) {
	mc := dst.Info.MC
	if !dst.HasTimeSig && src.HasTimeSig {
		d.Advisoryf(mc, "time signature only present in staff %d", staffID)
		dst.Info.TimeSig = src.Info.TimeSig
		dst.HasTimeSig = true
	}
	if !dst.HasKeySig && src.HasKeySig {
		d.Advisoryf(mc, "key signature only present in staff %d", staffID)
		dst.Info.KeySig = src.Info.KeySig
		dst.HasKeySig = true
	}
	if dst.Info.Repeat == model.MarkerNone && src.Info.Repeat != model.MarkerNone {
		d.Advisoryf(mc, "repeat marker %s only present in staff %d", src.Info.Repeat, staffID)
		dst.Info.Repeat = src.Info.Repeat
	}
	if dst.Info.Barline == "" && src.Info.Barline != "" {
		d.Advisoryf(mc, "barline %q only present in staff %d", src.Info.Barline, staffID)
		dst.Info.Barline = src.Info.Barline
	}
	if dst.Info.VoltaLen == 0 && src.Info.VoltaLen > 0 {
		d.Advisoryf(mc, "volta only present in staff %d", staffID)
		dst.Info.VoltaLen = src.Info.VoltaLen
	}
	if dst.Info.ActDur.IsZero() && !src.Info.ActDur.IsZero() {
		d.Advisoryf(mc, "irregular measure length only present in staff %d", staffID)
		dst.Info.ActDur = src.Info.ActDur
	}
	if !dst.Info.DontCount && src.Info.DontCount {
		d.Advisoryf(mc, "exclude-from-count flag only present in staff %d", staffID)
		dst.Info.DontCount = true
	}
	if dst.Info.NumberingOffset == 0 && src.Info.NumberingOffset != 0 {
		d.Advisoryf(mc, "numbering offset only present in staff %d", staffID)
		dst.Info.NumberingOffset = src.Info.NumberingOffset
	}
}

// carrySignatures is an explicit carry-last-value scan: a signature holds
// until overwritten by a later measure.
func carrySignatures(infos []model.MeasureInfo, filled []Row, d *diag.List) {
	timeSig := frac.Zero
	keySig := 0
	haveTime := false
	for mc := range infos {
		if filled[mc].HasTimeSig {
			timeSig = infos[mc].TimeSig
			haveTime = true
		}
		if !haveTime {
			d.Structuralf(mc, "no time signature in effect, assuming 4/4")
			timeSig = frac.New(4, 4)
			haveTime = true
		}
		if filled[mc].HasKeySig {
			keySig = infos[mc].KeySig
		}
		infos[mc].TimeSig = timeSig
		infos[mc].KeySig = keySig
	}
}

func writeSyntheticMarkers(infos []model.MeasureInfo, d *diag.List) {
	if len(infos) == 0 {
		return
	}
	last := len(infos) - 1
	// capture the notated markers before writing either synthetic one, so a
	// single-measure score is not reported against its own synthetic First
	firstOrig := infos[0].Repeat
	lastOrig := infos[last].Repeat
	if firstOrig != model.MarkerNone && firstOrig != model.MarkerFirst {
		d.Advisoryf(0, "overwriting %s with firstMeasure", firstOrig)
	}
	infos[0].Repeat = model.MarkerFirst
	if lastOrig != model.MarkerNone && lastOrig != model.MarkerLast {
		d.Advisoryf(last, "overwriting %s with lastMeasure", lastOrig)
	}
	infos[last].Repeat = model.MarkerLast
}
