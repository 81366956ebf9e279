package column

import (
	"github.com/daviszhen/tabular/pkg/common"
	"github.com/daviszhen/tabular/pkg/util"
)

// ColumnView is a non-owning reference into a column's buffers: backing
// data plus row offset and length, with a reference to the validity
// mask. A view carries no release operation; its backing buffer's owner
// controls the lifetime, and the view must not outlive it.
type ColumnView struct {
	typ    common.LType
	data   []byte
	mask   *util.Bitmap
	offset int
	rows   int
}

// NewColumnView builds a view over raw buffers. data must hold at least
// offset+rows elements of typ; mask may be nil for an all-valid region.
func NewColumnView(typ common.LType, data []byte, mask *util.Bitmap, offset, rows int) *ColumnView {
	if mask == nil {
		mask = &util.Bitmap{}
	}
	return &ColumnView{
		typ:    typ,
		data:   data,
		mask:   mask,
		offset: offset,
		rows:   rows,
	}
}

func (v *ColumnView) Typ() common.LType {
	return v.typ
}

func (v *ColumnView) Rows() int {
	return v.rows
}

func (v *ColumnView) Offset() int {
	return v.offset
}

func (v *ColumnView) Mask() *util.Bitmap {
	return v.mask
}

// Nullable reports whether the viewed region carries a validity buffer.
func (v *ColumnView) Nullable() bool {
	return v.mask.IsMaskSet()
}

// HasNulls reports whether any viewed row is null.
func (v *ColumnView) HasNulls() bool {
	if !v.mask.IsMaskSet() {
		return false
	}
	return v.mask.CountValid(uint64(v.offset), uint64(v.rows)) < v.rows
}

func (v *ColumnView) RowIsValid(idx int) bool {
	return v.mask.RowIsValid(uint64(v.offset + idx))
}

func (v *ColumnView) GetValue(idx int) *Scalar {
	util.AssertFunc(idx < v.rows)
	return loadValue(v.typ, v.data, v.mask, v.offset+idx)
}

// SliceView narrows the view to rows [begin, end) without copying.
func (v *ColumnView) SliceView(begin, end int) *ColumnView {
	util.AssertFunc(begin >= 0 && begin <= end && end <= v.rows)
	return &ColumnView{
		typ:    v.typ,
		data:   v.data,
		mask:   v.mask,
		offset: v.offset + begin,
		rows:   end - begin,
	}
}

// ViewSlice reinterprets the viewed region as elements; index i is row i
// of the view.
func ViewSlice[T any](v *ColumnView) []T {
	all := util.ToSlice[T](v.data, v.typ.GetInternalType().Size())
	return all[v.offset : v.offset+v.rows]
}

// RawBytes returns the viewed data region as raw bytes.
func (v *ColumnView) RawBytes() []byte {
	sz := v.typ.GetInternalType().Size()
	return v.data[v.offset*sz : (v.offset+v.rows)*sz]
}

// MutableColumnView adds element and validity stores to a view. It
// exists solely for the in-place range copy; everything else goes
// through owned outputs.
type MutableColumnView struct {
	ColumnView
}

func (v *MutableColumnView) SetValid(idx int, valid bool) {
	v.mask.Set(uint64(v.offset+idx), valid)
}

func (v *MutableColumnView) SetValue(idx int, val *Scalar) {
	util.AssertFunc(idx < v.rows)
	storeValue(v.typ, v.data, v.mask, v.offset+idx, val)
}

// View reinterprets the mutable view as a read view.
func (v *MutableColumnView) View() *ColumnView {
	ro := v.ColumnView
	return &ro
}

// MutViewSlice is ViewSlice for mutable views.
func MutViewSlice[T any](v *MutableColumnView) []T {
	all := util.ToSlice[T](v.data, v.typ.GetInternalType().Size())
	return all[v.offset : v.offset+v.rows]
}
