package copying

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daviszhen/tabular/pkg/column"
	"github.com/daviszhen/tabular/pkg/common"
)

func TestSliceColumn(t *testing.T) {
	col := column.NewIntegerColumn([]int32{0, 1, 2, 3, 4, 5})
	defer col.Release(nil)

	views, err := SliceColumn(col.View(), []int{1, 3, 2, 6})
	require.NoError(t, err)
	require.Len(t, views, 2)

	assertI32Rows(t, views[0], []int32{1, 2}, nil)
	assertI32Rows(t, views[1], []int32{2, 3, 4, 5}, nil)
}

func TestSliceColumnAliasesInput(t *testing.T) {
	col := column.NewIntegerColumn([]int32{0, 1, 2})
	defer col.Release(nil)

	views, err := SliceColumn(col.View(), []int{0, 3})
	require.NoError(t, err)
	column.ColumnSlice[int32](col)[1] = 42
	assert.Equal(t, int32(42), column.ViewSlice[int32](views[0])[1])
}

func TestSliceColumnOddIndices(t *testing.T) {
	col := column.NewIntegerColumn([]int32{0, 1, 2})
	defer col.Release(nil)

	_, err := SliceColumn(col.View(), []int{0, 1, 2})
	require.Error(t, err)
	assert.True(t, common.IsContract(err))
}

func TestSliceColumnBadPair(t *testing.T) {
	col := column.NewIntegerColumn([]int32{0, 1, 2})
	defer col.Release(nil)

	_, err := SliceColumn(col.View(), []int{2, 1})
	require.Error(t, err)
	assert.True(t, common.IsContract(err))

	_, err = SliceColumn(col.View(), []int{0, 4})
	require.Error(t, err)
	assert.True(t, common.IsContract(err))
}

func TestSliceColumnEmptyRange(t *testing.T) {
	col := column.NewIntegerColumn([]int32{0, 1, 2})
	defer col.Release(nil)

	views, err := SliceColumn(col.View(), []int{1, 1})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 0, views[0].Rows())
}

func TestSplitColumn(t *testing.T) {
	vals := make([]int32, 19)
	for i := range vals {
		vals[i] = int32(10 + i)
	}
	col := column.NewIntegerColumn(vals)
	defer col.Release(nil)

	views, err := SplitColumn(col.View(), []int{2, 5, 9})
	require.NoError(t, err)
	require.Len(t, views, 4)

	assertI32Rows(t, views[0], []int32{10, 11}, nil)
	assertI32Rows(t, views[1], []int32{12, 13, 14}, nil)
	assertI32Rows(t, views[2], []int32{15, 16, 17, 18}, nil)
	assert.Equal(t, 10, views[3].Rows())

	// every row lands in exactly one piece
	total := 0
	for _, v := range views {
		total += v.Rows()
	}
	assert.Equal(t, col.Rows(), total)
}

func TestSplitColumnUnsorted(t *testing.T) {
	col := column.NewIntegerColumn([]int32{0, 1, 2, 3})
	defer col.Release(nil)

	_, err := SplitColumn(col.View(), []int{3, 1})
	require.Error(t, err)
	assert.True(t, common.IsContract(err))

	_, err = SplitColumn(col.View(), []int{5})
	require.Error(t, err)
	assert.True(t, common.IsContract(err))
}

func TestSplitColumnNoSplits(t *testing.T) {
	col := column.NewIntegerColumn([]int32{0, 1})
	defer col.Release(nil)

	views, err := SplitColumn(col.View(), nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 2, views[0].Rows())
}

func TestSliceTable(t *testing.T) {
	a := column.NewIntegerColumn([]int32{0, 1, 2, 3})
	b := column.NewVarcharColumn([]string{"w", "x", "y", "z"})
	defer a.Release(nil)
	defer b.Release(nil)
	tbl := tableOf(t, a, b)

	parts, err := SliceTable(tbl.View(), []int{1, 3})
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, 2, parts[0].Rows())
	assert.Equal(t, "x", parts[0].Column(1).GetValue(0).Str)
}

func TestSplitTable(t *testing.T) {
	a := column.NewIntegerColumn([]int32{0, 1, 2, 3, 4})
	b := column.NewDoubleColumn([]float64{0, .1, .2, .3, .4})
	defer a.Release(nil)
	defer b.Release(nil)
	tbl := tableOf(t, a, b)

	parts, err := SplitTable(tbl.View(), []int{2})
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, 2, parts[0].Rows())
	assert.Equal(t, 3, parts[1].Rows())
	assert.Equal(t, .2, parts[1].Column(1).GetValue(0).F64)
}

func TestSliceCarriesValidity(t *testing.T) {
	col := column.NewIntegerColumn([]int32{0, 1, 2, 3}).SetNulls([]int{2})
	defer col.Release(nil)

	views, err := SliceColumn(col.View(), []int{2, 4})
	require.NoError(t, err)
	assert.False(t, views[0].RowIsValid(0))
	assert.True(t, views[0].RowIsValid(1))
}
