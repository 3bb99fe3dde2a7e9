package fees

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDocumentedRates(t *testing.T) {
	// 2,000,000 pot at 0.5% + 0.5%
	split := Compute(2_000_000, 50, 50)
	assert.Equal(t, int64(10_000), split.ClientFee)
	assert.Equal(t, int64(10_000), split.PlatformFee)
	assert.Equal(t, int64(1_980_000), split.WinnerPayout)
}

func TestComputeFloorsFees(t *testing.T) {
	// 3,333 is not divisible by 10000: each fee floors to 16,
	// the winner absorbs the remainder
	split := Compute(3_333, 50, 50)
	assert.Equal(t, int64(16), split.ClientFee)
	assert.Equal(t, int64(16), split.PlatformFee)
	assert.Equal(t, int64(3_301), split.WinnerPayout)
	assert.Equal(t, int64(3_333), split.WinnerPayout+split.ClientFee+split.PlatformFee)
}

func TestComputeConservesPot(t *testing.T) {
	pots := []int64{1, 2, 9_999, 10_000, 10_001, 2_000_000, 123_456_789, math.MaxInt64}
	// Combined rates above 10000 bps are rejected at manager init, so the
	// arithmetic only has to conserve within that range.
	rates := []struct{ client, platform uint16 }{
		{0, 0}, {1, 0}, {50, 50}, {9_999, 1}, {5_000, 5_000}, {3_333, 6_667}, {10_000, 0},
	}
	for _, pot := range pots {
		for _, r := range rates {
			split := Compute(pot, r.client, r.platform)
			assert.Equal(t, pot, split.WinnerPayout+split.ClientFee+split.PlatformFee,
				"pot %d rates %d/%d", pot, r.client, r.platform)
			assert.GreaterOrEqual(t, split.WinnerPayout, int64(0),
				"pot %d rates %d/%d", pot, r.client, r.platform)
		}
	}
}

func TestComputeZeroRates(t *testing.T) {
	split := Compute(1_000_000, 0, 0)
	assert.Equal(t, int64(0), split.ClientFee)
	assert.Equal(t, int64(0), split.PlatformFee)
	assert.Equal(t, int64(1_000_000), split.WinnerPayout)
}

func TestTieSplitEven(t *testing.T) {
	p1, p2 := TieSplit(1_980_000)
	assert.Equal(t, int64(990_000), p1)
	assert.Equal(t, int64(990_000), p2)
}

func TestTieSplitOddUnitGoesToPlayer1(t *testing.T) {
	p1, p2 := TieSplit(1_980_001)
	assert.Equal(t, int64(990_001), p1)
	assert.Equal(t, int64(990_000), p2)
	assert.Equal(t, int64(1_980_001), p1+p2)
}

func TestCancellationDocumentedRates(t *testing.T) {
	// stake 1,000,000 at 0.5% client fee
	refund, clientFee := Cancellation(1_000_000, 50)
	assert.Equal(t, int64(995_000), refund)
	assert.Equal(t, int64(5_000), clientFee)
}

func TestCancellationConservesStake(t *testing.T) {
	for _, stake := range []int64{1, 999, 10_000, 1_000_001, math.MaxInt64} {
		refund, clientFee := Cancellation(stake, 50)
		assert.Equal(t, stake, refund+clientFee)
	}
}
