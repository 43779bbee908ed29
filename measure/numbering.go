package measure

import (
	"fmt"

	"github.com/annotatorB/schubert-dances/diag"
	"github.com/annotatorB/schubert-dances/model"
)

// ComputeMN derives the human-visible measure number for every mc.
// Non-excluded measures count 1, 2, 3, ... in mc order; excluded measures
// (pickups, second halves of split measures) hold the previous number, with
// an excluded mc 0 numbered 0. A numbering offset adds to every bar count
// from its measure onward.
//
// A non-monotonic or gapped result means a malformed score, not a parser
// bug; both conditions are reported and the numbers kept as computed.
func ComputeMN(infos []model.MeasureInfo, d *diag.List) {
	count := 0
	offset := 0
	for mc := range infos {
		if infos[mc].NumberingOffset != 0 {
			offset += infos[mc].NumberingOffset
		}
		if !infos[mc].DontCount {
			count++
		}
		infos[mc].MN = count + offset
	}
	if len(infos) > 0 && infos[0].DontCount {
		infos[0].MN = 0
	}
	validateNumbering(infos, d)
}

func validateNumbering(infos []model.MeasureInfo, d *diag.List) {
	prev := 0
	maxMN := 0
	seen := map[int]bool{}
	for mc := range infos {
		mn := infos[mc].MN
		if mc > 0 && mn < prev {
			d.Structuralf(mc, "measure number regresses from %d to %d", prev, mn)
		}
		prev = mn
		seen[mn] = true
		if mn > maxMN {
			maxMN = mn
		}
	}
	var missing []int
	for n := 1; n <= maxMN; n++ {
		if !seen[n] {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		d.Structuralf(-1, "measure numbering skips %s", fmt.Sprint(missing))
	}
}
