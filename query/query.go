// Package query remembers video search queries and matches them against the catalog.
package query

import (
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/videoflix/videoflix/filesystem"
	"github.com/videoflix/videoflix/key"
	"github.com/videoflix/videoflix/model"
	"github.com/videoflix/videoflix/where"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var (
	cacherOnce sync.Once
	cacher     *gache.Cache[map[string]*queryRecord]

	suggestionMu    sync.Mutex
	suggestionCache = make(map[string][]*queryRecord)
)

func history() *gache.Cache[map[string]*queryRecord] {
	cacherOnce.Do(func() {
		cacher = gache.New[map[string]*queryRecord](
			&gache.Options{
				Path:       where.Queries(),
				FileSystem: &filesystem.GacheFs{},
			},
		)
	})
	return cacher
}

// Remember records a search query or increases its rank by weight.
func Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	cached, expired, err := history().Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*queryRecord)
	}

	if record, ok := cached[q]; ok {
		record.Rank += weight
	} else {
		cached[q] = &queryRecord{Rank: weight, Query: q}
	}

	suggestionMu.Lock()
	suggestionCache = make(map[string][]*queryRecord)
	suggestionMu.Unlock()

	return history().Set(cached)
}

// Suggest returns the best remembered query for a partial input.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns remembered queries matching the partial input, highest rank first.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	suggestionMu.Lock()
	defer suggestionMu.Unlock()

	records, ok := suggestionCache[q]
	if !ok {
		cached, expired, err := history().Get()
		if err != nil || expired || cached == nil {
			return []string{}
		}

		for _, record := range cached {
			if fuzzy.Match(q, record.Query) {
				records = append(records, record)
			}
		}

		slices.SortFunc(records, func(a, b *queryRecord) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank
			}
			return strings.Compare(a.Query, b.Query)
		})

		suggestionCache[q] = records
	}

	return lo.Map(records, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

// Filter returns the videos whose title fuzzily matches q, closest match first.
// Videos matching only by genre follow the title matches in catalog order.
// An empty query returns the catalog unchanged.
func Filter(q string, videos []model.Video) []model.Video {
	q = sanitize(q)
	if q == "" {
		return videos
	}

	titles := lo.Map(videos, func(v model.Video, _ int) string {
		return v.Title()
	})

	ranks := fuzzy.RankFindNormalizedFold(q, titles)
	sort.Stable(ranks)

	matched := make([]model.Video, 0, len(ranks))
	seen := make(map[int]bool, len(ranks))
	for _, r := range ranks {
		matched = append(matched, videos[r.OriginalIndex])
		seen[r.OriginalIndex] = true
	}

	for i, v := range videos {
		if !seen[i] && v.HasGenre(q) {
			matched = append(matched, v)
		}
	}

	return matched
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
