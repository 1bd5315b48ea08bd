package persistence

// Database models for the recipe catalog store. The layout mirrors the
// game-data dump: items, recipes, per-slot recipe item rows (plain rows
// bind an item, ore rows bind a substitution class), and the ore class
// membership tables.

// ItemModel represents an item record
type ItemModel struct {
	ID            int32  `gorm:"primaryKey"`
	InternalName  string `gorm:"column:internal_name"`
	LocalizedName string `gorm:"column:localized_name;index"`
	Damage        int32
	ModName       string `gorm:"column:mod_name"`
	IsFluid       bool   `gorm:"column:is_fluid"`
}

// TableName specifies the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// RecipeModel represents a recipe record
type RecipeModel struct {
	ID            int32  `gorm:"primaryKey"`
	Source        string `gorm:"index"`
	Enabled       bool
	DurationTicks *int32 `gorm:"column:duration_ticks"`
	EUt           *int32 `gorm:"column:eu_t"`
}

// TableName specifies the table name for GORM
func (RecipeModel) TableName() string {
	return "recipes"
}

// RecipeItemModel is one slot entry of a recipe. Plain slots set
// ItemID; substitutable slots set OreClassID and a slot index shared by
// every candidate class of that slot.
type RecipeItemModel struct {
	ID         uint  `gorm:"primaryKey;autoIncrement"`
	RecipeID   int32 `gorm:"column:recipe_id;index"`
	ItemID     *int32
	OreClassID *int32 `gorm:"column:ore_class_id"`
	Slot       *int
	Amount     int32
	Chance     *int32
	IsOutput   bool `gorm:"column:is_output;index"`
}

// TableName specifies the table name for GORM
func (RecipeItemModel) TableName() string {
	return "recipe_items"
}

// OreClassModel is a named substitution class
type OreClassModel struct {
	ID   int32 `gorm:"primaryKey"`
	Name string
}

// TableName specifies the table name for GORM
func (OreClassModel) TableName() string {
	return "ore_classes"
}

// OreClassItemModel is one item membership of a substitution class
type OreClassItemModel struct {
	ID         uint  `gorm:"primaryKey;autoIncrement"`
	OreClassID int32 `gorm:"column:ore_class_id;index"`
	ItemID     int32
}

// TableName specifies the table name for GORM
func (OreClassItemModel) TableName() string {
	return "ore_class_items"
}

// MetadataModel stores import provenance (dump version, import time)
type MetadataModel struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// TableName specifies the table name for GORM
func (MetadataModel) TableName() string {
	return "metadata"
}
