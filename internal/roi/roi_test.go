package roi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimateSavings_KnownValues(t *testing.T) {
	est, err := EstimateSavings(150, "85001")
	require.NoError(t, err)

	require.Equal(t, 5.8, est.PeakSunHours)
	require.Equal(t, 11250.0, est.AnnualUsageKWh)
	require.Equal(t, 6.6, est.SystemSizeKW)
	require.InDelta(t, 19927.96, est.GrossCost, 0.01)
	require.InDelta(t, 13949.57, est.NetCost, 0.01)
	require.Equal(t, 1800.0, est.AnnualSavings)
	require.Equal(t, 7.7, est.PaybackYears)
	require.Equal(t, 4.69, est.CO2TonsPerYear)
	require.Equal(t, "85001", est.ZipCode)
}

func TestEstimateSavings_RejectsBadBill(t *testing.T) {
	for _, bill := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, err := EstimateSavings(bill, "10001")
		require.ErrorIs(t, err, ErrInvalidBill)
	}
}

func TestEstimateSavings_Deterministic(t *testing.T) {
	a, err := EstimateSavings(212.34, "30301")
	require.NoError(t, err)
	b, err := EstimateSavings(212.34, "30301")
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestEstimateSavings_MonotonicInBill(t *testing.T) {
	zips := []string{"", "02101", "33101", "94105", "abcde"}
	for _, zip := range zips {
		prev, err := EstimateSavings(20, zip)
		require.NoError(t, err)
		require.GreaterOrEqual(t, prev.PaybackYears, 0.0)

		for bill := 25.0; bill <= 2000; bill += 5 {
			cur, err := EstimateSavings(bill, zip)
			require.NoError(t, err)
			require.Greater(t, cur.AnnualSavings, prev.AnnualSavings, "bill %v zip %q", bill, zip)
			require.GreaterOrEqual(t, cur.PaybackYears, 0.0)
			require.GreaterOrEqual(t, cur.SystemSizeKW, prev.SystemSizeKW)
			prev = cur
		}
	}
}

func TestPeakSunHours(t *testing.T) {
	require.Equal(t, 4.0, PeakSunHours("02139"))
	require.Equal(t, 5.5, PeakSunHours(" 94105 "))
	require.Equal(t, defaultSunHours, PeakSunHours(""))
	require.Equal(t, defaultSunHours, PeakSunHours("x1234"))
}

func TestAssumptions_CustomOffset(t *testing.T) {
	a := DefaultAssumptions
	a.Offset = 0.5

	est, err := a.Estimate(100, "")
	require.NoError(t, err)
	require.Equal(t, 600.0, est.AnnualSavings)
}
