package catalog

// Stack binds an item to an amount within a recipe slot.
type Stack struct {
	Item   *Item
	Amount int32
	// Chance is the drop probability in hundredths of a percent for
	// result slots; nil means guaranteed output.
	Chance *int32
	// OreSlot is the index of the substitutable slot this stack was
	// resolved from, or -1 for a plain slot.
	OreSlot int
}

// OreClass is a named set of interchangeable items. Member ids keep the
// store's ascending order so "first item of the first class" is stable.
type OreClass struct {
	ID      int32
	Name    string
	ItemIDs []int32
}

// OreSlot is a substitutable ingredient slot: any item out of one of the
// candidate classes satisfies the slot, at the combined amount.
type OreSlot struct {
	Index   int
	Amount  int32
	Classes []*OreClass // ascending class id
}

// DefaultItemID returns the slot's effective item when no override is
// set: the first item of the first class that has any members. Returns
// false when every candidate class is empty.
func (s *OreSlot) DefaultItemID() (int32, bool) {
	for _, class := range s.Classes {
		if len(class.ItemIDs) > 0 {
			return class.ItemIDs[0], true
		}
	}
	return 0, false
}

// Allows reports whether itemID is a member of any candidate class.
func (s *OreSlot) Allows(itemID int32) bool {
	for _, class := range s.Classes {
		for _, id := range class.ItemIDs {
			if id == itemID {
				return true
			}
		}
	}
	return false
}

// Recipe is an immutable crafting process: ordered plain ingredient
// stacks, ordered substitutable slots, and ordered result stacks.
type Recipe struct {
	ID      int32
	Machine string
	Enabled bool
	// DurationTicks and EUt are nil for recipes without machine timing
	DurationTicks *int32
	EUt           *int32

	Ingredients []Stack
	OreSlots    []*OreSlot
	Results     []Stack
}

// DurationSeconds converts the tick duration for display (20 ticks/s).
func (r *Recipe) DurationSeconds() float64 {
	if r.DurationTicks == nil {
		return 0
	}
	return float64(*r.DurationTicks) / 20.0
}

// ReferencedItemIDs returns the ids of every item a recipe can touch:
// plain ingredients, results, and all candidates of every ore slot.
func (r *Recipe) ReferencedItemIDs() []int32 {
	seen := make(map[int32]struct{})
	var ids []int32
	add := func(id int32) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, st := range r.Ingredients {
		add(st.Item.ID)
	}
	for _, st := range r.Results {
		add(st.Item.ID)
	}
	for _, slot := range r.OreSlots {
		for _, class := range slot.Classes {
			for _, id := range class.ItemIDs {
				add(id)
			}
		}
	}
	return ids
}
