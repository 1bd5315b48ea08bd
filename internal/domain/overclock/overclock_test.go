package overclock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcerda/craftflow/internal/domain/overclock"
)

func TestTierByVoltage(t *testing.T) {
	// Act & Assert
	assert.Equal(t, overclock.ULV, overclock.TierByVoltage(8))
	assert.Equal(t, overclock.LV, overclock.TierByVoltage(32))
	assert.Equal(t, overclock.HV, overclock.TierByVoltage(512))
	// A supply between tier maxima clamps down to the tier it can feed
	assert.Equal(t, overclock.EV, overclock.TierByVoltage(2049))
	assert.Equal(t, overclock.IV, overclock.TierByVoltage(9000))
	assert.Equal(t, overclock.MAX, overclock.TierByVoltage(1<<40))
}

func TestCalculate_StandardRecipe(t *testing.T) {
	// Act: a 30 EU/t, 600 tick recipe fed 512 EU/t overclocks twice
	result := overclock.Calculate(30, 512, 600)

	// Assert
	assert.Equal(t, int32(480), result.EUt)
	assert.Equal(t, int32(77), result.Duration)
}

func TestCalculate_NoHeadroomLeavesRecipeUnchanged(t *testing.T) {
	// Act: 30 EU/t at LV already saturates the tier below
	result := overclock.Calculate(30, 32, 100)

	// Assert
	assert.Equal(t, int32(30), result.EUt)
	assert.Equal(t, int32(100), result.Duration)
}

func TestCalculate_SupplyBelowRecipeDraw(t *testing.T) {
	// Act
	result := overclock.Calculate(100, 32, 100)

	// Assert
	assert.Equal(t, int32(100), result.EUt)
	assert.Equal(t, int32(100), result.Duration)
}

func TestCalculate_ULVNeverOverclocks(t *testing.T) {
	// Act
	result := overclock.Calculate(4, 8, 100)

	// Assert
	assert.Equal(t, int32(4), result.EUt)
	assert.Equal(t, int32(100), result.Duration)
}

func TestCalculate_LowPowerRecipeQuadruples(t *testing.T) {
	// Act: recipes at or below 8 EU/t skip one more tier
	atEight := overclock.Calculate(8, 128, 100)
	atSixteen := overclock.Calculate(16, 512, 80)

	// Assert
	assert.Equal(t, int32(128), atEight.EUt)
	assert.Equal(t, int32(25), atEight.Duration)
	assert.Equal(t, int32(256), atSixteen.EUt)
	assert.Equal(t, int32(20), atSixteen.Duration)
}

func TestCalculate_NegativeEUKeepsSign(t *testing.T) {
	// Act: generators carry negative draw and overclock on magnitude
	result := overclock.Calculate(-30, 512, 600)

	// Assert
	assert.Equal(t, int32(-480), result.EUt)
	assert.Equal(t, int32(77), result.Duration)
}
