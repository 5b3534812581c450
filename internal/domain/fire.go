package domain

import "sort"

// CountFiresByYear groups fire detections by acquisition year. When
// hasRegion is true the per-region split is populated, with 0 for a region
// that saw no detections in a year. When false the source export carried no
// region column and the split is left unpopulated.
func CountFiresByYear(fires []FireDetection, hasRegion bool) []YearlyFireCounts {
	counts := make(map[int]*YearlyFireCounts)
	for _, f := range fires {
		year := f.AcqDate.Year()
		c, ok := counts[year]
		if !ok {
			c = &YearlyFireCounts{Year: year, HasRegion: hasRegion}
			counts[year] = c
		}
		c.Count++
		if hasRegion {
			if f.IsEastern {
				c.EasternCount++
			} else {
				c.WesternCount++
			}
		}
	}

	out := make([]YearlyFireCounts, 0, len(counts))
	for _, c := range counts {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })

	return out
}
