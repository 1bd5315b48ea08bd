// Package ranking produces a stable display ordering for the recipes
// of a plan. Recipes form a directed graph with an edge from producer
// to consumer whenever one recipe's result feeds another's ingredient;
// a PageRank pass over that graph accumulates rank downstream, so
// recipes closer to the final products surface first in a table. The
// ranking is a read-only convenience and has no effect on solving.
package ranking

import (
	"math"
	"sort"

	"github.com/dcerda/craftflow/internal/domain/catalog"
	"github.com/dcerda/craftflow/internal/domain/planning"
)

const (
	damping       = 0.85
	maxIterations = 100
	tolerance     = 1e-9
)

// DisplayOrder ranks the plan's selected recipes. Returns recipe ids,
// highest rank first; ties break on ascending recipe id so the order
// is stable across runs.
func DisplayOrder(p *planning.Plan, cat catalog.Catalog) ([]int32, error) {
	ids := p.RecipeIDs()
	if len(ids) == 0 {
		return nil, nil
	}

	edges, err := buildEdges(p, cat, ids)
	if err != nil {
		return nil, err
	}
	ranks := pagerank(ids, edges)

	sort.SliceStable(ids, func(i, j int) bool {
		ri, rj := ranks[ids[i]], ranks[ids[j]]
		if ri != rj {
			return ri > rj
		}
		return ids[i] < ids[j]
	})
	return ids, nil
}

// buildEdges connects producer recipes to the recipes consuming their
// results, via the effective (override-resolved) ingredient lists.
func buildEdges(p *planning.Plan, cat catalog.Catalog, ids []int32) (map[int32][]int32, error) {
	producers := make(map[int32][]int32) // item id -> producing recipe ids
	for _, id := range ids {
		sel, _ := p.Selection(id)
		for _, st := range sel.Recipe().Results {
			producers[st.Item.ID] = append(producers[st.Item.ID], id)
		}
	}

	edges := make(map[int32][]int32, len(ids))
	for _, id := range ids {
		sel, _ := p.Selection(id)
		ingredients, err := sel.EffectiveIngredients(cat)
		if err != nil {
			return nil, err
		}
		seen := make(map[int32]struct{})
		for _, st := range ingredients {
			for _, producer := range producers[st.Item.ID] {
				if producer == id {
					continue
				}
				if _, ok := seen[producer]; ok {
					continue
				}
				seen[producer] = struct{}{}
				edges[producer] = append(edges[producer], id)
			}
		}
	}
	return edges, nil
}

func pagerank(ids []int32, edges map[int32][]int32) map[int32]float64 {
	n := float64(len(ids))
	ranks := make(map[int32]float64, len(ids))
	for _, id := range ids {
		ranks[id] = 1 / n
	}

	for iter := 0; iter < maxIterations; iter++ {
		next := make(map[int32]float64, len(ids))
		for _, id := range ids {
			next[id] = (1 - damping) / n
		}
		// Dangling rank is redistributed evenly.
		var dangling float64
		for _, id := range ids {
			out := edges[id]
			if len(out) == 0 {
				dangling += ranks[id]
				continue
			}
			share := damping * ranks[id] / float64(len(out))
			for _, target := range out {
				next[target] += share
			}
		}
		for _, id := range ids {
			next[id] += damping * dangling / n
		}

		var delta float64
		for _, id := range ids {
			delta += math.Abs(next[id] - ranks[id])
		}
		ranks = next
		if delta < tolerance {
			break
		}
	}
	return ranks
}
