package copying

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daviszhen/tabular/pkg/column"
	"github.com/daviszhen/tabular/pkg/common"
)

func intView(v []int32) *column.ColumnView {
	return column.NewIntegerColumn(v).View()
}

func mapView(v []int32) *column.ColumnView {
	return column.NewIntegerColumn(v).View()
}

func tableOf(t *testing.T, cols ...*column.Column) *column.Table {
	tbl, err := column.NewTable(cols...)
	require.NoError(t, err)
	return tbl
}

func assertI32Rows(t *testing.T, col *column.ColumnView, want []int32, nulls []int) {
	require.Equal(t, len(want), col.Rows())
	nullSet := map[int]bool{}
	for _, n := range nulls {
		nullSet[n] = true
	}
	for i := range want {
		if nullSet[i] {
			assert.False(t, col.RowIsValid(i), "row %d", i)
			continue
		}
		require.True(t, col.RowIsValid(i), "row %d", i)
		assert.Equal(t, want[i], column.ViewSlice[int32](col)[i], "row %d", i)
	}
}

func TestGatherColumn(t *testing.T) {
	src := intView([]int32{10, 20, 30})
	out, err := GatherColumn(src, mapView([]int32{-1, 0, 2}), true, nil)
	require.NoError(t, err)
	defer out.Release(nil)

	assertI32Rows(t, out.View(), []int32{30, 10, 30}, nil)
}

func TestGatherBoundsError(t *testing.T) {
	src := intView([]int32{10, 20, 30})
	_, err := GatherColumn(src, mapView([]int32{-1, 0, 5}), true, nil)
	require.Error(t, err)
	assert.True(t, common.IsContract(err))

	_, err = GatherColumn(src, mapView([]int32{-4}), true, nil)
	require.Error(t, err)
	assert.True(t, common.IsContract(err))
}

func TestGatherNullMapRejected(t *testing.T) {
	src := intView([]int32{10, 20, 30})
	m := column.NewIntegerColumn([]int32{0, 1}).SetNulls([]int{1})
	defer m.Release(nil)

	_, err := GatherColumn(src, m.View(), true, nil)
	require.Error(t, err)
	assert.True(t, common.IsContract(err))
}

func TestGatherNonIntegralMapRejected(t *testing.T) {
	src := intView([]int32{10, 20, 30})
	m := column.NewDoubleColumn([]float64{0, 1})
	defer m.Release(nil)

	_, err := GatherColumn(src, m.View(), true, nil)
	require.Error(t, err)
	assert.True(t, common.IsContract(err))
}

func TestGatherPropagatesNulls(t *testing.T) {
	src := column.NewIntegerColumn([]int32{10, 20, 30}).SetNulls([]int{1})
	defer src.Release(nil)

	out, err := GatherColumn(src.View(), mapView([]int32{1, 2, 1, 0}), true, nil)
	require.NoError(t, err)
	defer out.Release(nil)

	assertI32Rows(t, out.View(), []int32{0, 30, 0, 10}, []int{0, 2})
}

func TestGatherEmptyMap(t *testing.T) {
	src := intView([]int32{10, 20, 30})
	out, err := GatherColumn(src, mapView(nil), true, nil)
	require.NoError(t, err)
	defer out.Release(nil)
	assert.Equal(t, 0, out.Rows())
}

func TestGatherTable(t *testing.T) {
	a := column.NewIntegerColumn([]int32{10, 20, 30})
	b := column.NewVarcharColumn([]string{"a", "b", "c"})
	defer a.Release(nil)
	defer b.Release(nil)
	tbl := tableOf(t, a, b)

	out, err := Gather(tbl.View(), mapView([]int32{2, 0}), true, nil)
	require.NoError(t, err)
	defer out.Release(nil)

	require.Equal(t, 2, out.Rows())
	assertI32Rows(t, out.Column(0).View(), []int32{30, 10}, nil)
	assert.Equal(t, "c", out.Column(1).GetValue(0).Str)
	assert.Equal(t, "a", out.Column(1).GetValue(1).Str)
}

func TestGatherDecimalAndDate(t *testing.T) {
	decs := []common.Decimal{
		{Decimal: decimal.MustNew(12345, 2)},
		{Decimal: decimal.MustNew(-999, 2)},
		{Decimal: decimal.MustNew(0, 2)},
	}
	dates := []common.Date{
		{Year: 2024, Month: 2, Day: 29},
		{Year: 1970, Month: 1, Day: 1},
		{Year: 1999, Month: 12, Day: 31},
	}
	a := column.NewDecimalColumn(decs, 10, 2).SetNulls([]int{2})
	b := column.NewDateColumn(dates)
	defer a.Release(nil)
	defer b.Release(nil)
	tbl := tableOf(t, a, b)

	out, err := Gather(tbl.View(), mapView([]int32{2, 0, 1}), true, nil)
	require.NoError(t, err)
	defer out.Release(nil)

	require.Equal(t, 3, out.Rows())
	assert.False(t, out.Column(0).RowIsValid(0))
	got := out.Column(0).GetValue(1).Dec
	assert.True(t, got.Equal(&decs[0]))
	got = out.Column(0).GetValue(2).Dec
	assert.True(t, got.Equal(&decs[1]))

	d := out.Column(1).GetValue(0).Date
	assert.True(t, d.Equal(&dates[2]))
	d = out.Column(1).GetValue(2).Date
	assert.True(t, d.Equal(&dates[1]))
}

func TestGatherVarcharOwnsPayload(t *testing.T) {
	src := column.NewVarcharColumn([]string{"left", "right"})
	out, err := GatherColumn(src.View(), mapView([]int32{1, 1, 0}), true, nil)
	require.NoError(t, err)
	defer out.Release(nil)

	// releasing the source must not disturb the gathered copy
	src.Release(nil)
	assert.Equal(t, "right", out.GetValue(0).Str)
	assert.Equal(t, "right", out.GetValue(1).Str)
	assert.Equal(t, "left", out.GetValue(2).Str)
}
