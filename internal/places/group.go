package places

import "sort"

// GroupByType buckets places by their first declared type; places with no
// types land under "other". Grouping happens caller-side — the provider has
// no such capability.
func GroupByType(results []Place) map[string][]Place {
	grouped := make(map[string][]Place)
	for _, p := range results {
		key := "other"
		if len(p.Types) > 0 {
			key = p.Types[0]
		}
		grouped[key] = append(grouped[key], p)
	}
	return grouped
}

// SortByRating orders places by rating descending, in place. A missing rating
// sorts as 0, so unrated places sink to the bottom. The sort is stable to
// keep the provider's relevance order among equal ratings.
func SortByRating(results []Place) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rating > results[j].Rating
	})
}
