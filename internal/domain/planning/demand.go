package planning

// ItemDemand is the per-item configuration of a plan: how much net
// output the user wants, how much stock is already on hand, and whether
// the item may be drawn from an unlimited external source at a stated
// per-unit cost.
//
// TotalProduced and TotalConsumed are display values derived from the
// last solve and count recipe flows only, not draws from stock or
// external sources; they are fully rewritten on every solve and never
// persisted.
type ItemDemand struct {
	ItemID int32

	Want          float64
	Have          float64
	AllowInfinite bool
	InfiniteCost  float64

	TotalProduced float64
	TotalConsumed float64
}

// Byproduct is the surplus left over after demand is met.
func (d *ItemDemand) Byproduct() float64 {
	b := d.TotalProduced - d.TotalConsumed - d.Want + d.Have
	if b < 0 {
		return 0
	}
	return b
}

// RawRequirement is the amount that has to come from outside the
// selected recipes (stock or an infinite source).
func (d *ItemDemand) RawRequirement() float64 {
	r := d.TotalConsumed - d.TotalProduced
	if r < 0 {
		return 0
	}
	return r
}

// IsZero reports whether the entry carries no user configuration and no
// solve output.
func (d *ItemDemand) IsZero() bool {
	return d.Want == 0 && d.Have == 0 && !d.AllowInfinite &&
		d.TotalProduced == 0 && d.TotalConsumed == 0
}
