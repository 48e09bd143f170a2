package space

import (
	"context"
	"testing"

	"github.com/specialistvlad/cslgen/internal/csl"
	"github.com/specialistvlad/cslgen/internal/hcl"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func parse(t *testing.T, src string) *csl.Program {
	t.Helper()
	prog, err := hcl.NewParser().Parse(context.Background(), "test.csl", []byte(src))
	require.NoError(t, err)
	return prog
}

func TestExplore_SingleParameter(t *testing.T) {
	prog := parse(t, `
search_space "simple" {
  parameter "x" {
    type = int
    range {
      min = 0
      max = 3
    }
  }
  constraint "small" {
    expr = x <= 2
  }
  specification {
    expr = small
  }
}
`)
	report, err := New(0).Explore(context.Background(), prog)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, report.Variables)
	require.Equal(t, uint64(4), report.Total)
	require.Equal(t, 4, report.Checked)
	require.Equal(t, 3, report.Legal)
	require.False(t, report.Truncated)
	require.Equal(t, [][]string{{"0"}, {"1"}, {"2"}}, report.Sample)
}

const simpleCSL = `
search_space "simple" {
  parameter "x" {
    type = int
    range {
      min = 1
      max = 7
    }
  }
  parameter "y" {
    type = int
    range {
      min = 1
      max = 7
    }
  }
  parameter "z" {
    type = int
    range {
      min = 1
      max = 7
    }
  }
  constraint "cone" {
    expr = z + x >= z
  }
  constraint "ctwo" {
    expr = y > z
  }
}
`

func TestExplore_SimpleProblem(t *testing.T) {
	report, err := New(0).Explore(context.Background(), parse(t, simpleCSL))
	require.NoError(t, err)
	require.Equal(t, []string{"z", "x", "y"}, report.Variables)
	require.Equal(t, uint64(343), report.Total)
	require.Equal(t, 21*7, report.Legal)
	require.Len(t, report.Sample, DefaultSampleSize)
	require.Equal(t, []string{"1", "1", "2"}, report.Sample[0])
}

func TestExplore_Truncates(t *testing.T) {
	report, err := New(5).Explore(context.Background(), parse(t, simpleCSL))
	require.NoError(t, err)
	require.True(t, report.Truncated)
	require.Equal(t, 5, report.Checked)
	require.Equal(t, uint64(343), report.Total)
}

func TestExplore_RegionsConstantsAndSpecificationBody(t *testing.T) {
	prog := parse(t, `
search_space "tiling" {
  constant "budget" {
    value = 16
  }
  region_set "loop" {
    regions = ["loopJ", "loopK"]
  }
  parameter "tile" {
    type       = int
    region_set = loop
    power_range {
      min  = 1
      max  = 3
      base = 2
    }
  }
  parameter "wide" {
    type = boolean
  }
  constraint "fits" {
    expr = tile.loopK * tile.loopJ <= budget
  }
  constraint "narrow" {
    expr = !wide || log(tile.loopJ, 2) > 2.5
  }
  specification {
    expr = fits && narrow
  }
}
`)
	report, err := New(0).Explore(context.Background(), prog)
	require.NoError(t, err)
	require.Equal(t, []string{"tile_loopK", "tile_loopJ", "wide"}, report.Variables)
	require.Equal(t, uint64(18), report.Total)
	// fits: (2,2) (2,4) (2,8) (4,2) (4,4) (8,2). wide=true additionally
	// needs loopJ == 8, which only (2,8) has.
	require.Equal(t, 6+1, report.Legal)
}

func TestExplore_CollidingReferencesShareOneVariable(t *testing.T) {
	collide := func(expr string) string {
		return `
search_space "p" {
  region_set "rs" {
    regions = ["r1"]
  }
  parameter "x" {
    type       = int
    region_set = rs
    values     = [1]
  }
  parameter "x_r1" {
    type   = int
    values = [2, 3]
  }
  constraint "c" {
    expr = ` + expr + `
  }
}
`
	}

	testCases := []struct {
		name   string
		expr   string
		total  uint64
		legal  int
		sample [][]string
	}{
		{
			name:   "parameter reference seen first",
			expr:   "x_r1 <= x.r1",
			total:  2,
			legal:  2,
			sample: [][]string{{"2"}, {"3"}},
		},
		{
			name:   "region reference seen first",
			expr:   "x.r1 >= x_r1",
			total:  1,
			legal:  1,
			sample: [][]string{{"1"}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report, err := New(0).Explore(context.Background(), parse(t, collide(tc.expr)))
			require.NoError(t, err)
			require.Equal(t, []string{"x_r1"}, report.Variables)
			require.Equal(t, tc.total, report.Total)
			require.Equal(t, tc.legal, report.Legal)
			require.Equal(t, tc.sample, report.Sample)
		})
	}
}

func TestExplore_EmptyDomain(t *testing.T) {
	report, err := New(0).Explore(context.Background(), parse(t, `
search_space "p" {
  parameter "x" {
    type = string
  }
  constraint "c" {
    expr = x == "a"
  }
}
`))
	require.NoError(t, err)
	require.Zero(t, report.Total)
	require.Zero(t, report.Checked)
}

func TestExplore_EvaluationErrors(t *testing.T) {
	testCases := map[string]string{
		"division by zero": "x / 0 > 1",
		"not a boolean":    "x + 1",
		"nan result":       "pow(0 - x, 0.5) > 1",
	}
	for name, body := range testCases {
		t.Run(name, func(t *testing.T) {
			prog := parse(t, `
search_space "p" {
  parameter "x" {
    type   = int
    values = [2]
  }
  constraint "c" {
    expr = `+body+`
  }
}
`)
			_, err := New(0).Explore(context.Background(), prog)
			require.Error(t, err)
			require.Contains(t, err.Error(), "x=2")
		})
	}
}

func TestFunctions(t *testing.T) {
	fns := Functions()
	for _, name := range csl.Builtins() {
		require.Contains(t, fns, name)
	}

	v, err := fns["log"].Call([]cty.Value{cty.NumberIntVal(8), cty.NumberIntVal(2)})
	require.NoError(t, err)
	f, _ := v.AsBigFloat().Float64()
	require.InDelta(t, 3.0, f, 1e-12)

	v, err = fns["log"].Call([]cty.Value{cty.NumberIntVal(1)})
	require.NoError(t, err)
	require.True(t, v.Equals(cty.Zero).True())

	_, err = fns["log"].Call([]cty.Value{cty.NumberIntVal(-1)})
	require.Error(t, err)
	_, err = fns["log"].Call([]cty.Value{cty.NumberIntVal(4), cty.NumberIntVal(1)})
	require.Error(t, err)

	v, err = fns["pow"].Call([]cty.Value{cty.NumberIntVal(2), cty.NumberIntVal(10)})
	require.NoError(t, err)
	require.True(t, v.Equals(cty.NumberIntVal(1024)).True())
	_, err = fns["pow"].Call([]cty.Value{cty.NumberIntVal(-8), cty.NumberFloatVal(0.5)})
	require.Error(t, err)
}
