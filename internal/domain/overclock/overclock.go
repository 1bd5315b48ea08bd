// Package overclock computes how a machine recipe's power draw and
// duration change when run at a higher voltage tier.
package overclock

import "math"

// Voltages holds the maximum EU/t of each tier, ULV through MAX.
var Voltages = []int64{8, 32, 128, 512, 2048, 8192, 32768, 131072, 524288, math.MaxInt32}

// TierNames holds the display names of each tier.
var TierNames = []string{"ULV", "LV", "MV", "HV", "EV", "IV", "LuV", "ZPM", "UV", "MAX"}

// Tier indexes into Voltages / TierNames.
const (
	ULV = iota
	LV
	MV
	HV
	EV
	IV
	LuV
	ZPM
	UV
	MAX
)

// Result is the overclocked power draw and duration of a recipe.
type Result struct {
	EUt      int32
	Duration int32
}

// TierByVoltage returns the lowest tier able to handle the voltage.
func TierByVoltage(voltage int64) int {
	for tier := 1; tier < len(Voltages); tier++ {
		if voltage == Voltages[tier] {
			return tier
		}
		if voltage < Voltages[tier] {
			return tier - 1
		}
	}
	return len(Voltages) - 1
}

// Calculate overclocks a recipe rated at euT for the given supply
// voltage. Low-power recipes (<=16 EU/t) quadruple power per tier
// skipped while halving duration; everything else repeatedly trades 4x
// power for a 2.8x speedup until the duration floor is reached.
func Calculate(euT int32, voltage int64, duration int32) Result {
	negativeEU := euT < 0
	tier := TierByVoltage(voltage)
	if Voltages[tier] <= int64(euT) || tier == 0 {
		return Result{EUt: euT, Duration: duration}
	}
	if negativeEU {
		euT = -euT
	}

	if euT <= 16 {
		multiplier := tier
		if euT > 8 {
			multiplier = tier - 1
		}
		resultEUt := euT * int32(1<<multiplier) * int32(1<<multiplier)
		resultDuration := duration / int32(1<<multiplier)
		if negativeEU {
			resultEUt = -resultEUt
		}
		return Result{EUt: resultEUt, Duration: resultDuration}
	}

	resultEUt := euT
	resultDuration := float64(duration)
	// do not overclock further once the duration is already too small
	for resultDuration >= 3 && int64(resultEUt) <= Voltages[tier-1] {
		resultEUt *= 4
		resultDuration /= 2.8
	}
	if negativeEU {
		resultEUt = -resultEUt
	}
	return Result{EUt: resultEUt, Duration: int32(math.Ceil(resultDuration))}
}
