package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/footprint/internal/footprint/space"
)

func TestTableCosts(t *testing.T) {
	t.Parallel()

	tbl := Table{"a": {"i1": 1, "i2": 2}}
	row, err := tbl.Costs("a")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"i1": 1, "i2": 2}, row)

	row["i1"] = 99
	assert.Equal(t, 1.0, tbl["a"]["i1"], "Costs returns a copy")

	_, err = tbl.Costs("missing")
	assert.ErrorIs(t, err, space.ErrMissingData)

	_, err = tbl.Cost("a", "i3")
	assert.ErrorIs(t, err, space.ErrMissingData)
}

func TestCostFunc(t *testing.T) {
	t.Parallel()

	var calls []space.ConfigID
	var src CostSource = CostFunc(func(cfg space.ConfigID) (map[string]float64, error) {
		calls = append(calls, cfg)
		return map[string]float64{"i1": 3}, nil
	})
	row, err := src.Costs("x")
	require.NoError(t, err)
	assert.Equal(t, 3.0, row["i1"])
	assert.Equal(t, []space.ConfigID{"x"}, calls)
}
