package linkbrain

import "slices"

// AggregateTags counts keywords across clips and returns them by descending
// count. Ties keep first-occurrence order. limit <= 0 returns every tag.
func AggregateTags(keywords [][]string, limit int) []Tag {
	index := make(map[string]int)
	tags := make([]Tag, 0)
	for _, clip := range keywords {
		for _, kw := range clip {
			if kw == "" {
				continue
			}
			if i, ok := index[kw]; ok {
				tags[i].Count++
				continue
			}
			index[kw] = len(tags)
			tags = append(tags, Tag{Name: kw, Count: 1})
		}
	}

	slices.SortStableFunc(tags, func(a, b Tag) int {
		return b.Count - a.Count
	})

	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}
