package catalog

import "fmt"

// Item is an immutable catalog entry. Items are owned by the catalog
// store and referenced by id everywhere else.
type Item struct {
	ID            int32
	InternalName  string
	LocalizedName string
	// Damage is the variant/meta tag from the game dump (0 for most items)
	Damage  int32
	ModName string
	IsFluid bool
}

// Name returns the best display name available for the item.
func (i *Item) Name() string {
	if i.LocalizedName != "" {
		return i.LocalizedName
	}
	if i.InternalName != "" {
		return fmt.Sprintf("[%s]", i.InternalName)
	}
	return fmt.Sprintf("item-%d", i.ID)
}
