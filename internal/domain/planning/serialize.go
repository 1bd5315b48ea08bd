package planning

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/dcerda/craftflow/internal/domain/catalog"
)

// Plan documents persist the solver-relevant state only: selected
// recipe ids with their slot overrides, and the per-item demand
// configuration. The solution is never persisted; callers re-solve
// after loading. Field names match the historical save format.

type planDocument struct {
	ID      string                    `json:"id,omitempty"`
	Recipes map[int32]*recipeDocument `json:"recipes"`
	Items   map[int32]*demandDocument `json:"items"`
}

type recipeDocument struct {
	RecipeID      int32         `json:"recipeId"`
	SlotOverrides map[int]int32 `json:"slotOverrides,omitempty"`
}

type demandDocument struct {
	Want          float64 `json:"want"`
	Have          float64 `json:"have"`
	AllowInfinite bool    `json:"isInfinite"`
	InfiniteCost  float64 `json:"infCost"`
}

// Marshal serializes the plan. A document id is minted on first use so
// saved plans can be told apart across sessions.
func (p *Plan) Marshal() ([]byte, error) {
	if p.id == "" {
		p.id = uuid.NewString()
	}
	doc := planDocument{
		ID:      p.id,
		Recipes: make(map[int32]*recipeDocument, len(p.recipes)),
		Items:   make(map[int32]*demandDocument, len(p.items)),
	}
	for id, sel := range p.recipes {
		rd := &recipeDocument{RecipeID: id}
		if overrides := sel.SlotOverrides(); len(overrides) > 0 {
			rd.SlotOverrides = overrides
		}
		doc.Recipes[id] = rd
	}
	for id, d := range p.items {
		doc.Items[id] = &demandDocument{
			Want:          d.Want,
			Have:          d.Have,
			AllowInfinite: d.AllowInfinite,
			InfiniteCost:  d.InfiniteCost,
		}
	}
	return json.MarshalIndent(&doc, "", "  ")
}

// Unmarshal reconstructs a plan from a document. Recipes are re-read
// from the catalog; a missing recipe or item id fails the whole load.
func Unmarshal(cat catalog.Catalog, data []byte) (*Plan, error) {
	var doc planDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse plan document: %w", err)
	}

	p := NewPlan(cat)
	p.id = doc.ID
	for id, rd := range doc.Recipes {
		if err := p.AddRecipe(id); err != nil {
			return nil, err
		}
		for slot, itemID := range rd.SlotOverrides {
			if err := p.SetOreSlotOverride(id, slot, itemID); err != nil {
				return nil, err
			}
		}
	}
	for id, dd := range doc.Items {
		d, ok := p.items[id]
		if !ok {
			// Demand rows for items the current selection no longer
			// references are dropped, same as the reconciliation rule.
			continue
		}
		d.Want = dd.Want
		d.Have = dd.Have
		d.AllowInfinite = dd.AllowInfinite
		d.InfiniteCost = dd.InfiniteCost
	}
	return p, nil
}

// SaveFile writes the plan document to path.
func (p *Plan) SaveFile(path string) error {
	data, err := p.Marshal()
	if err != nil {
		return fmt.Errorf("failed to serialize plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return nil
}

// LoadFile reads a plan document from path.
func LoadFile(cat catalog.Catalog, path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	return Unmarshal(cat, data)
}
