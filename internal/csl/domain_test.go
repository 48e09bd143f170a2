package csl

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestIntDomain_FillLinear(t *testing.T) {
	testCases := []struct {
		name           string
		min, max, step int64
		want           []int64
	}{
		{name: "inclusive upper bound", min: 0, max: 3, step: 1, want: []int64{0, 1, 2, 3}},
		{name: "truncated at largest term below max", min: 1, max: 8, step: 3, want: []int64{1, 4, 7}},
		{name: "single element", min: 1, max: 1, step: 1, want: []int64{1}},
		{name: "backwards range is empty", min: 2, max: 1, step: 1, want: []int64{}},
		{name: "backwards range with negative step is empty", min: 2, max: 1, step: -1, want: []int64{}},
		{name: "negative bounds", min: -4, max: 0, step: 2, want: []int64{-4, -2, 0}},
		{name: "near the top of int64", min: math.MaxInt64 - 2, max: math.MaxInt64, step: 2, want: []int64{math.MaxInt64 - 2, math.MaxInt64}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewIntDomain()
			require.NoError(t, d.FillLinear(tc.min, tc.max, tc.step))

			got := d.Ints()
			if got == nil {
				got = []int64{}
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("FillLinear(%d, %d, %d) mismatch (-want +got):\n%s", tc.min, tc.max, tc.step, diff)
			}
		})
	}
}

func TestIntDomain_FillLinear_LengthProperty(t *testing.T) {
	for min := int64(-5); min <= 5; min++ {
		for max := min; max <= min+12; max++ {
			for step := int64(1); step <= 4; step++ {
				d := NewIntDomain()
				require.NoError(t, d.FillLinear(min, max, step))

				require.Equal(t, int((max-min)/step+1), d.Len())
				for i, v := range d.Ints() {
					require.Equal(t, min+int64(i)*step, v)
					require.LessOrEqual(t, v, max)
				}
			}
		}
	}
}

func TestIntDomain_FillLinear_RejectsDegenerateSteps(t *testing.T) {
	d := NewIntDomain()

	var domErr *DomainError
	require.ErrorAs(t, d.FillLinear(0, 10, 0), &domErr)
	require.Contains(t, domErr.Error(), "zero")

	require.ErrorAs(t, d.FillLinear(0, 10, -1), &domErr)
	require.ErrorAs(t, d.FillLinear(3, 3, -1), &domErr)
	require.Zero(t, d.Len())
}

func TestIntDomain_FillLinear_RejectsHugeRanges(t *testing.T) {
	d := NewIntDomain()

	var domErr *DomainError
	require.ErrorAs(t, d.FillLinear(math.MinInt64, math.MaxInt64, 1), &domErr)
	require.ErrorAs(t, d.FillLinear(0, MaxDomainSize, 1), &domErr)
	require.NoError(t, d.FillLinear(1, MaxDomainSize, 1))
	require.Equal(t, MaxDomainSize, d.Len())
	require.ErrorAs(t, d.FillLinear(0, 0, 1), &domErr)
}

func TestIntDomain_FillLinearText(t *testing.T) {
	d := NewIntDomain()
	require.NoError(t, d.FillLinearText("1", " 7", "2"))
	require.Equal(t, []int64{1, 3, 5, 7}, d.Ints())

	var domErr *DomainError
	require.ErrorAs(t, d.FillLinearText("1.5", "7", "2"), &domErr)
	require.Contains(t, domErr.Error(), "min")
	require.ErrorAs(t, d.FillLinearText("1", "x", "2"), &domErr)
	require.Equal(t, 4, d.Len())
}

func TestIntDomain_FillIsNotIdempotent(t *testing.T) {
	d := NewIntDomain()
	require.NoError(t, d.FillLinear(1, 2, 1))
	require.NoError(t, d.FillLinear(1, 2, 1))
	require.Equal(t, []int64{1, 2, 1, 2}, d.Ints())
}

func TestIntDomain_FillPower(t *testing.T) {
	for base := int64(1); base <= 5; base++ {
		for min := int64(0); min <= 4; min++ {
			for max := min; max <= min+6; max++ {
				d := NewIntDomain()
				require.NoError(t, d.FillPower(min, max, base))
				require.Equal(t, int(max-min+1), d.Len())

				for i, v := range d.Ints() {
					require.Equal(t, int64(math.Pow(float64(base), float64(min+int64(i)))), v)
				}
			}
		}
	}
}

func TestIntDomain_FillPower_NegativeExponentsTruncate(t *testing.T) {
	d := NewIntDomain()
	require.NoError(t, d.FillPower(-2, 2, 2))
	require.Equal(t, []int64{0, 0, 1, 2, 4}, d.Ints())

	d = NewIntDomain()
	require.NoError(t, d.FillPower(-3, -1, -1))
	require.Equal(t, []int64{-1, 1, -1}, d.Ints())

	var overflow *ArithmeticOverflow
	require.ErrorAs(t, NewIntDomain().FillPower(-1, 0, 0), &overflow)
}

func TestIntDomain_FillPower_Overflow(t *testing.T) {
	d := NewIntDomain()
	require.NoError(t, d.FillPower(62, 62, 2))
	require.Equal(t, []int64{1 << 62}, d.Ints())

	var overflow *ArithmeticOverflow
	err := d.FillPower(60, 63, 2)
	require.ErrorAs(t, err, &overflow)
	require.Equal(t, "63", overflow.Exponent)
	require.Equal(t, 1, d.Len(), "a failing fill must not append anything")

	require.ErrorAs(t, NewIntDomain().FillPower(0, 40, 10), &overflow)

	d = NewIntDomain()
	require.NoError(t, d.FillPower(63, 63, -2))
	require.Equal(t, []int64{math.MinInt64}, d.Ints())
}

func TestIntDomain_FillPowerText(t *testing.T) {
	d := NewIntDomain()
	require.NoError(t, d.FillPowerText("1", "7", "2"))
	require.Equal(t, []int64{2, 4, 8, 16, 32, 64, 128}, d.Ints())

	var domErr *DomainError
	require.ErrorAs(t, d.FillPowerText("1", "7", "two"), &domErr)
}

func TestFloatDomain_FillLinear_IndexBased(t *testing.T) {
	d := NewFloatDomain()
	require.NoError(t, d.FillLinear(0, 1, 0.1))

	got := d.Floats()
	require.Len(t, got, 11)
	for k, v := range got {
		require.Equal(t, float64(k)*0.1, v, "term %d", k)
	}
	require.Equal(t, 1.0, got[10])
}

func TestFloatDomain_FillLinear_ClampsLastTerm(t *testing.T) {
	d := NewFloatDomain()
	require.NoError(t, d.FillLinear(0, 0.3, 0.1))
	require.Equal(t, []float64{0, 0.1, 0.2, 0.3}, d.Floats())
}

func TestFloatDomain_FillLinear_EdgeCases(t *testing.T) {
	d := NewFloatDomain()
	require.NoError(t, d.FillLinear(1, 1, 1))
	require.Equal(t, []float64{1}, d.Floats())

	d = NewFloatDomain()
	require.NoError(t, d.FillLinear(2, 1, 1))
	require.Zero(t, d.Len())

	var domErr *DomainError
	require.ErrorAs(t, d.FillLinear(0, 1, 0), &domErr)
	require.ErrorAs(t, d.FillLinear(0, 1, -0.5), &domErr)
	require.ErrorAs(t, d.FillLinear(math.NaN(), 1, 0.5), &domErr)
	require.ErrorAs(t, d.FillLinear(0, math.Inf(1), 0.5), &domErr)
	require.ErrorAs(t, d.FillLinear(0, 1e9, 1e-3), &domErr)
}

func TestFloatDomain_FillLinearText(t *testing.T) {
	d := NewFloatDomain()
	require.NoError(t, d.FillLinearText("0.5", "2", "0.5"))
	require.Equal(t, []float64{0.5, 1, 1.5, 2}, d.Floats())
	require.Equal(t, []string{"0.5", "1.0", "1.5", "2.0"}, d.Literals())
}

func TestFloatDomain_FillPower(t *testing.T) {
	d := NewFloatDomain()
	require.NoError(t, d.FillPowerText("-1", "2", "2"))
	require.Equal(t, []float64{0.5, 1, 2, 4}, d.Floats())

	d = NewFloatDomain()
	require.NoError(t, d.FillPower(0.5, 2.5, 4))
	require.InDeltaSlice(t, []float64{2, 8, 32}, d.Floats(), 1e-9)

	var overflow *ArithmeticOverflow
	require.ErrorAs(t, d.FillPower(0, 400, 10), &overflow)

	var domErr *DomainError
	require.ErrorAs(t, d.FillPower(0.5, 0.5, -4), &domErr)
	require.Equal(t, 3, d.Len())
}

func TestFormatFloat(t *testing.T) {
	require.Equal(t, "1.0", FormatFloat(1))
	require.Equal(t, "0.1", FormatFloat(0.1))
	require.Equal(t, "-3.0", FormatFloat(-3))
	require.Equal(t, "1e+21", FormatFloat(1e21))
	require.Equal(t, "+Inf", FormatFloat(math.Inf(1)))
	require.Equal(t, "NaN", FormatFloat(math.NaN()))
}

func TestNewDomain(t *testing.T) {
	d, err := NewDomain(TypeIntArray)
	require.NoError(t, err)
	_, ok := AsIntDomain(d)
	require.True(t, ok)

	d, err = NewDomain(TypeFloat)
	require.NoError(t, err)
	_, ok = AsFloatDomain(d)
	require.True(t, ok)

	_, err = NewDomain(TypeBoolean)
	require.Error(t, err)
}
