package services

import "sort"

// TagCount is one bucket of the tag-usage histogram.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagHistogram counts tag occurrences across all posts' tag lists, sorted by
// count descending. Ties are ordered by tag name so the output is stable.
func TagHistogram(tagSets [][]string) []TagCount {
	counts := make(map[string]int)
	for _, tags := range tagSets {
		for _, tag := range tags {
			counts[tag]++
		}
	}

	histogram := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		histogram = append(histogram, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(histogram, func(i, j int) bool {
		if histogram[i].Count != histogram[j].Count {
			return histogram[i].Count > histogram[j].Count
		}
		return histogram[i].Tag < histogram[j].Tag
	})
	return histogram
}
