// Package importer ingests game-data dump files into the catalog
// store. Two historical dump shapes exist: machine sources carry their
// recipes nested under a machine list, while crafting sources carry a
// flat recipe list with optional ore-dictionary ingredient slots. Both
// are handled behind one adapter so the store never sees the
// difference.
package importer

import (
	"encoding/json"
	"fmt"
)

// Field tags mirror the dump's abbreviated key names.

// Dump is the top-level document of a game-data dump.
type Dump struct {
	OreDict []DumpOreClass `json:"oreDict"`
	Items   []DumpItem     `json:"items"`
	Sources []DumpSource   `json:"sources"`
}

// DumpItem is one item record.
type DumpItem struct {
	ID            int32  `json:"id"`
	Damage        int32  `json:"d"`
	IsFluid       bool   `json:"f"`
	InternalName  string `json:"uN"`
	LocalizedName string `json:"lN"`
	ModName       string `json:"mod,omitempty"`
}

// DumpOreClass names a substitution class and its member item ids.
type DumpOreClass struct {
	Name string  `json:"name"`
	IDs  []int32 `json:"ids"`
}

// DumpSource is either a machine source (Machines set) or a crafting
// source (Recipes set). Exactly one of the two shapes is populated.
type DumpSource struct {
	Type     string               `json:"type,omitempty"`
	Name     string               `json:"n,omitempty"`
	Machines []DumpMachine        `json:"machines,omitempty"`
	Recipes  []DumpCraftingRecipe `json:"recs,omitempty"`
}

// DumpMachine groups the recipes of one machine type.
type DumpMachine struct {
	Name    string              `json:"n"`
	Recipes []DumpMachineRecipe `json:"recs"`
}

// DumpMachineRecipe is the machine-source recipe shape.
type DumpMachineRecipe struct {
	Enabled      bool        `json:"en"`
	Duration     int32       `json:"dur"`
	InputItems   []DumpStack `json:"iI"`
	OutputItems  []DumpStack `json:"iO"`
	InputFluids  []DumpStack `json:"fI"`
	OutputFluids []DumpStack `json:"fO"`
	EUt          *int32      `json:"eut,omitempty"`
}

// DumpStack is an (item, amount) pair with an optional output chance.
type DumpStack struct {
	Amount int32  `json:"a"`
	ID     int32  `json:"id"`
	Chance *int32 `json:"c,omitempty"`
}

// DumpCraftingRecipe is the crafting-source recipe shape: one output
// and ingredient slots that may be plain items or ore-class references.
type DumpCraftingRecipe struct {
	Output DumpStack           `json:"o"`
	Inputs []*DumpCraftingSlot `json:"iI"`
}

// DumpCraftingSlot binds either a concrete item id or a set of
// ore-class ids. Nil slots (empty grid positions) are skipped.
type DumpCraftingSlot struct {
	Amount      *int32  `json:"a,omitempty"`
	ID          *int32  `json:"id,omitempty"`
	OreClassIDs []int32 `json:"ods,omitempty"`
}

// Decode parses a dump document.
func Decode(data []byte) (*Dump, error) {
	var dump Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("failed to parse dump: %w", err)
	}
	return &dump, nil
}
