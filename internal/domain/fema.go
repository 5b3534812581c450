package domain

import "sort"

// CountDeclarationsByYear groups FEMA declarations by the year the incident
// began. Each declaration row counts once; the OpenFEMA export already lists
// one row per declaration.
func CountDeclarationsByYear(decls []FemaDeclaration) []YearlyFemaCounts {
	counts := make(map[int]int)
	for _, d := range decls {
		counts[d.IncidentBeginDate.Year()]++
	}

	out := make([]YearlyFemaCounts, 0, len(counts))
	for year, n := range counts {
		out = append(out, YearlyFemaCounts{Year: year, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })

	return out
}
