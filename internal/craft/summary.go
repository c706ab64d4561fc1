package craft

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/craftsim/internal/game/item"
)

// Summary tallies a batch.
type Summary struct {
	Total  int
	Failed int
	// NotCrafted counts results the run stopped before reaching.
	NotCrafted int
	// ByRarity counts successful items per rarity.
	ByRarity map[item.Rarity]int
	// ByExplicitCount counts successful items per number of explicits.
	ByExplicitCount map[int]int
	// Unmapped counts stats without a description template, by stat id.
	Unmapped  map[string]int
	Unmatched int
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	s := Summary{
		Total:           len(results),
		ByRarity:        make(map[item.Rarity]int),
		ByExplicitCount: make(map[int]int),
		Unmapped:        make(map[string]int),
	}
	for _, r := range results {
		if r.Item == nil {
			s.NotCrafted++
			continue
		}
		if r.Err != nil {
			s.Failed++
			continue
		}
		s.ByRarity[r.Item.Rarity]++
		s.ByExplicitCount[len(r.Item.Explicits)]++
		for _, stat := range r.Description.Unmapped {
			s.Unmapped[stat]++
		}
		s.Unmatched += r.Description.Unmatched
	}
	return s
}

// String renders the summary as a short multi-line report.
func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Crafted: %d (failed: %d)\n", s.Total-s.Failed-s.NotCrafted, s.Failed)
	if s.NotCrafted > 0 {
		fmt.Fprintf(&sb, "Not crafted: %d\n", s.NotCrafted)
	}

	for _, r := range []item.Rarity{item.Normal, item.Magic, item.Rare, item.Unique} {
		if n := s.ByRarity[r]; n > 0 {
			fmt.Fprintf(&sb, "  %s: %d\n", r, n)
		}
	}

	counts := make([]int, 0, len(s.ByExplicitCount))
	for c := range s.ByExplicitCount {
		counts = append(counts, c)
	}
	sort.Ints(counts)
	for _, c := range counts {
		fmt.Fprintf(&sb, "  %d explicits: %d\n", c, s.ByExplicitCount[c])
	}

	if len(s.Unmapped) > 0 {
		stats := make([]string, 0, len(s.Unmapped))
		for stat := range s.Unmapped {
			stats = append(stats, stat)
		}
		sort.Strings(stats)
		fmt.Fprintf(&sb, "Undescribed stats: %s\n", strings.Join(stats, ", "))
	}
	if s.Unmatched > 0 {
		fmt.Fprintf(&sb, "Unmatched descriptions: %d\n", s.Unmatched)
	}
	return sb.String()
}
