package copying

import (
	"github.com/huandu/go-clone"

	"github.com/daviszhen/tabular/pkg/column"
	"github.com/daviszhen/tabular/pkg/common"
)

type MaskAllocationPolicy int

const (
	// MaskNever allocates no validity buffer.
	MaskNever MaskAllocationPolicy = iota
	// MaskRetain allocates one only if the source has one.
	MaskRetain
	// MaskAlways allocates one unconditionally.
	MaskAlways
)

func wantMask(policy MaskAllocationPolicy, src *column.ColumnView) bool {
	switch policy {
	case MaskAlways:
		return true
	case MaskRetain:
		return src.Nullable()
	default:
		return false
	}
}

// EmptyLike is a zero-row column with the source's type. The type is
// deep-cloned so the result shares nothing with the source.
func EmptyLike(src *column.ColumnView) *column.Column {
	return column.NewEmptyColumn(clone.Clone(src.Typ()).(common.LType))
}

// EmptyLikeTable applies EmptyLike per column.
func EmptyLikeTable(src *column.TableView) (*column.Table, error) {
	cols := make([]*column.Column, src.ColumnCount())
	for i := 0; i < src.ColumnCount(); i++ {
		cols[i] = EmptyLike(src.Column(i))
	}
	return column.NewTable(cols...)
}

// AllocateLike is an uninitialized column shaped like the source: same
// type, same row count, validity buffer per policy. Fixed-width types
// only; element values are not defined until written.
func AllocateLike(src *column.ColumnView, policy MaskAllocationPolicy, env *Env) (*column.Column, error) {
	return AllocateLike2(src, src.Rows(), policy, env)
}

// AllocateLike2 is AllocateLike with an explicit row count.
func AllocateLike2(src *column.ColumnView, rows int, policy MaskAllocationPolicy, env *Env) (*column.Column, error) {
	if !src.Typ().GetInternalType().IsFixedWidth() {
		return nil, common.ContractErrorf(
			"allocate-like requires a fixed-width type, got %v", src.Typ())
	}
	if rows < 0 {
		return nil, common.ContractErrorf("negative row count %d", rows)
	}
	out := column.NewColumn(clone.Clone(src.Typ()).(common.LType), rows, env.alloc())
	if wantMask(policy, src) {
		out.AllocMask()
	}
	return out, nil
}
