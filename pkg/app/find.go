package app

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"tableflip.dev/facemenu/pkg/menu"
)

// Match is a menu item found by Find.
type Match struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	// Path is the list and group names leading to the item.
	Path     string `json:"path"`
	Distance int    `json:"distance"`
}

// Find locates items whose display name fuzzily matches query, or whose id
// contains it. Results are ordered by match distance, then tree order.
func Find(m *menu.Menu, query string) []Match {
	items := walk(m)
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return items
	}

	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	seen := make(map[int]bool, len(ranks))
	out := make([]Match, 0, len(ranks))
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	for _, rank := range ranks {
		match := items[rank.OriginalIndex]
		match.Distance = rank.Distance
		seen[rank.OriginalIndex] = true
		out = append(out, match)
	}

	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if !seen[i] && strings.Contains(strings.ToLower(item.ID), lower) {
			item.Distance = len(item.ID) - len(lower)
			out = append(out, item)
		}
	}
	return out
}

// walk lists every item depth first, Registered before UnRegistered.
func walk(m *menu.Menu) []Match {
	var out []Match
	var visit func(list menu.ItemList, path string)
	visit = func(list menu.ItemList, path string) {
		for _, id := range list.Order() {
			item, ok := m.Item(id)
			if !ok {
				continue
			}
			out = append(out, Match{ID: id, Name: item.DisplayName(), Kind: item.Kind().String(), Path: path})
			if group, ok := m.Group(id); ok {
				visit(group, path+"/"+group.DisplayName())
			}
		}
	}
	visit(m.Registered(), menu.RegisteredID)
	visit(m.Unregistered(), menu.UnregisteredID)
	return out
}
