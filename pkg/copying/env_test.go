package copying

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daviszhen/tabular/pkg/column"
	"github.com/daviszhen/tabular/pkg/common"
)

// countingAlloc records every buffer it hands out and takes back.
type countingAlloc struct {
	allocs int
	frees  int
	bytes  int
}

func (a *countingAlloc) Alloc(sz int) []byte {
	a.allocs++
	a.bytes += sz
	return make([]byte, sz)
}

func (a *countingAlloc) Free(bytes []byte) {
	a.frees++
}

func (a *countingAlloc) Align() int {
	return 64
}

func TestEnvAllocatorOwnsValidityBuffers(t *testing.T) {
	src := column.NewIntegerColumn([]int32{10, 20, 30}).SetNulls([]int{1})
	defer src.Release(nil)

	alloc := &countingAlloc{}
	out, err := GatherColumn(src.View(), mapView([]int32{0, 1, 2}), true, &Env{Alloc: alloc})
	require.NoError(t, err)
	require.True(t, out.Nullable())

	// data buffer plus validity buffer, nothing from the global allocator
	assert.Equal(t, 2, alloc.allocs)

	out.Release(nil)
	assert.Equal(t, alloc.allocs, alloc.frees)
}

func TestEnvAllocatorPacksOneBlock(t *testing.T) {
	tbl := tableOf(t,
		column.NewIntegerColumn([]int32{1, 2, 3, 4}),
		column.NewVarcharColumn([]string{"a", "bb", "ccc", "dddd"}),
	)
	defer tbl.Release(nil)

	alloc := &countingAlloc{}
	pack, err := Pack(tbl.View(), &Env{Alloc: alloc})
	require.NoError(t, err)
	assert.Equal(t, 1, alloc.allocs)

	pack.Release(alloc)
	assert.Equal(t, 1, alloc.frees)
}

func TestEnvNilDefaults(t *testing.T) {
	out, err := GatherColumn(intView([]int32{7, 8}), mapView([]int32{1, 0}), true, nil)
	require.NoError(t, err)
	defer out.Release(nil)
	assertI32Rows(t, out.View(), []int32{8, 7}, nil)

	_, err = GatherColumn(intView([]int32{7}), mapView([]int32{3}), true, &Env{})
	require.Error(t, err)
	assert.True(t, common.IsContract(err))
}
