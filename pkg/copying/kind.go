package copying

import (
	"github.com/daviszhen/tabular/pkg/column"
	"github.com/daviszhen/tabular/pkg/common"
	"github.com/daviszhen/tabular/pkg/util"
)

// kindOps is the per-kind rearrangement strategy, selected once per
// column: fixed-width elements move by plain slice copy, varchar
// elements rebuild their out-of-line payload. Validity bits are handled
// by the callers; these methods move element bytes only.
type kindOps interface {
	// gather writes src row rows[i] into dst row i.
	gather(src *column.ColumnView, rows []int, dst *column.Column)
	// scatter writes src row i into dst row rows[i].
	scatter(src *column.ColumnView, rows []int, dst *column.Column)
	// copyRange writes src rows [srcBegin, srcEnd) into dst starting
	// at dstBegin.
	copyRange(src *column.ColumnView, srcBegin, srcEnd int, dst *column.Column, dstBegin int)
	// packFootprint is the out-of-line payload byte count of rows
	// [begin, end); zero for fixed-width kinds.
	packFootprint(src *column.ColumnView, begin, end int) int
	// pack copies rows [begin, end) into a packed block: inline
	// elements into data, out-of-line payload into heap.
	pack(src *column.ColumnView, begin, end int, data []byte, heap []byte)
}

func opsFor(pt common.PhyType) kindOps {
	switch pt {
	case common.BOOL:
		return fixedOps[bool]{}
	case common.INT8:
		return fixedOps[int8]{}
	case common.INT16:
		return fixedOps[int16]{}
	case common.INT32:
		return fixedOps[int32]{}
	case common.INT64:
		return fixedOps[int64]{}
	case common.UINT64:
		return fixedOps[uint64]{}
	case common.FLOAT:
		return fixedOps[float32]{}
	case common.DOUBLE:
		return fixedOps[float64]{}
	case common.DECIMAL:
		return fixedOps[common.Decimal]{}
	case common.DATE:
		return fixedOps[common.Date]{}
	case common.VARCHAR:
		return varcharOps{}
	default:
		panic("usp")
	}
}

type fixedOps[T any] struct{}

func (ops fixedOps[T]) gather(src *column.ColumnView, rows []int, dst *column.Column) {
	ss := column.ViewSlice[T](src)
	ds := column.ColumnSlice[T](dst)
	for i, r := range rows {
		ds[i] = ss[r]
	}
}

func (ops fixedOps[T]) scatter(src *column.ColumnView, rows []int, dst *column.Column) {
	ss := column.ViewSlice[T](src)
	ds := column.ColumnSlice[T](dst)
	for i, r := range rows {
		ds[r] = ss[i]
	}
}

func (ops fixedOps[T]) copyRange(src *column.ColumnView, srcBegin, srcEnd int, dst *column.Column, dstBegin int) {
	ss := column.ViewSlice[T](src)
	ds := column.ColumnSlice[T](dst)
	copy(ds[dstBegin:dstBegin+(srcEnd-srcBegin)], ss[srcBegin:srcEnd])
}

func (ops fixedOps[T]) packFootprint(src *column.ColumnView, begin, end int) int {
	return 0
}

func (ops fixedOps[T]) pack(src *column.ColumnView, begin, end int, data []byte, heap []byte) {
	copy(data, src.SliceView(begin, end).RawBytes())
}

// varcharOps is the varlen rebuild kernel: headers are rewritten to
// point at freshly copied payload, never shared, so every owned column
// frees its own payload on release.
type varcharOps struct{}

func rebuild(s *common.String) common.String {
	if s.Len == 0 {
		return common.String{}
	}
	dstMem := util.CMalloc(s.Len)
	util.CMemcpy(dstMem, s.DataPtr(), s.Len)
	return common.String{Data: dstMem, Len: s.Len}
}

func (ops varcharOps) gather(src *column.ColumnView, rows []int, dst *column.Column) {
	ss := column.ViewSlice[common.String](src)
	ds := column.ColumnSlice[common.String](dst)
	for i, r := range rows {
		if src.RowIsValid(r) {
			ds[i] = rebuild(&ss[r])
		} else {
			ds[i] = common.String{}
		}
	}
}

func (ops varcharOps) scatter(src *column.ColumnView, rows []int, dst *column.Column) {
	ss := column.ViewSlice[common.String](src)
	ds := column.ColumnSlice[common.String](dst)
	for i, r := range rows {
		if src.RowIsValid(i) {
			ds[r] = rebuild(&ss[i])
		} else {
			ds[r] = common.String{}
		}
	}
}

func (ops varcharOps) copyRange(src *column.ColumnView, srcBegin, srcEnd int, dst *column.Column, dstBegin int) {
	ss := column.ViewSlice[common.String](src)
	ds := column.ColumnSlice[common.String](dst)
	for i := srcBegin; i < srcEnd; i++ {
		if src.RowIsValid(i) {
			ds[dstBegin+i-srcBegin] = rebuild(&ss[i])
		} else {
			ds[dstBegin+i-srcBegin] = common.String{}
		}
	}
}

// releaseRows frees the out-of-line payload of owned varchar rows about
// to be overwritten. No-op for fixed-width columns and for rows with a
// zero header.
func releaseRows(dst *column.Column, rows []int) {
	if !dst.Typ().GetInternalType().IsVarchar() {
		return
	}
	ds := column.ColumnSlice[common.String](dst)
	for _, r := range rows {
		if util.PointerValid(ds[r].Data) {
			util.CFree(ds[r].Data)
		}
		ds[r] = common.String{}
	}
}

// releaseRange is releaseRows for a contiguous row range.
func releaseRange(dst *column.Column, begin, end int) {
	if !dst.Typ().GetInternalType().IsVarchar() {
		return
	}
	ds := column.ColumnSlice[common.String](dst)
	for r := begin; r < end; r++ {
		if util.PointerValid(ds[r].Data) {
			util.CFree(ds[r].Data)
		}
		ds[r] = common.String{}
	}
}

func (ops varcharOps) packFootprint(src *column.ColumnView, begin, end int) int {
	ss := column.ViewSlice[common.String](src)
	total := 0
	for i := begin; i < end; i++ {
		if src.RowIsValid(i) {
			total += ss[i].Len
		}
	}
	return total
}

func (ops varcharOps) pack(src *column.ColumnView, begin, end int, data []byte, heap []byte) {
	ss := column.ViewSlice[common.String](src)
	ds := util.ToSlice[common.String](data, common.VarcharSize)
	heapBase := util.BytesSliceToPointer(heap)
	cursor := 0
	for i := begin; i < end; i++ {
		if !src.RowIsValid(i) {
			ds[i-begin] = common.String{}
			continue
		}
		n := ss[i].Len
		copy(heap[cursor:cursor+n], ss[i].DataSlice())
		ds[i-begin] = common.String{
			Data: util.PointerAdd(heapBase, cursor),
			Len:  n,
		}
		cursor += n
	}
}
