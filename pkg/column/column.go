package column

import (
	"github.com/daviszhen/tabular/pkg/common"
	"github.com/daviszhen/tabular/pkg/util"
)

// Column owns one typed array of row values plus an optional validity
// bitmask. Absent mask bits mean every row is valid. Variable-width
// elements (varchar) keep their payload out of line; the inline bytes
// hold common.String headers.
type Column struct {
	typ   common.LType
	rows  int
	data  []byte
	mask  *util.Bitmap
	alloc util.BytesAllocator
}

// NewColumn allocates an uninitialized column of rows elements. alloc
// may be nil, which selects util.GAlloc. Every buffer of the column,
// validity bits included, comes from that allocator. No validity mask
// is allocated up front; the first null creates one.
func NewColumn(typ common.LType, rows int, alloc util.BytesAllocator) *Column {
	if alloc == nil {
		alloc = util.GAlloc
	}
	col := &Column{
		typ:   typ,
		rows:  rows,
		mask:  &util.Bitmap{},
		alloc: alloc,
	}
	sz := typ.GetInternalType().Size()
	if sz > 0 && rows > 0 {
		col.data = alloc.Alloc(sz * rows)
	}
	return col
}

// NewEmptyColumn is a schema-only column: zero rows, no data buffer,
// no validity buffer.
func NewEmptyColumn(typ common.LType) *Column {
	return &Column{typ: typ, mask: &util.Bitmap{}, alloc: util.GAlloc}
}

func (col *Column) Typ() common.LType {
	return col.typ
}

func (col *Column) Rows() int {
	return col.rows
}

func (col *Column) Data() []byte {
	return col.data
}

func (col *Column) Mask() *util.Bitmap {
	return col.mask
}

// Nullable reports whether a validity buffer exists.
func (col *Column) Nullable() bool {
	return col.mask.IsMaskSet()
}

// AllocMask creates the validity buffer, all bits valid. The buffer
// comes from the column's allocator.
func (col *Column) AllocMask() {
	if !col.mask.IsMaskSet() {
		col.mask.Init2(col.rows, col.alloc)
	}
}

// DropMask frees the validity buffer and leaves the column all valid.
func (col *Column) DropMask() {
	if col.mask.IsMaskSet() && col.alloc != nil {
		col.alloc.Free(col.mask.Bits)
	}
	col.mask.Reset()
}

func (col *Column) RowIsValid(idx int) bool {
	return col.mask.RowIsValid(uint64(idx))
}

func (col *Column) SetNull(idx int, null bool) {
	if null {
		col.AllocMask()
	}
	col.mask.Set(uint64(idx), !null)
}

func (col *Column) SetValue(idx int, val *Scalar) {
	util.AssertFunc(idx < col.rows)
	if val.IsNull {
		col.AllocMask()
	}
	storeValue(col.typ, col.data, col.mask, idx, val)
}

func (col *Column) GetValue(idx int) *Scalar {
	util.AssertFunc(idx < col.rows)
	return loadValue(col.typ, col.data, col.mask, idx)
}

// View returns a non-owning read view of the whole column.
func (col *Column) View() *ColumnView {
	return &ColumnView{
		typ:  col.typ,
		data: col.data,
		mask: col.mask,
		rows: col.rows,
	}
}

// MutView returns the mutable view used by the in-place range copy.
func (col *Column) MutView() *MutableColumnView {
	return &MutableColumnView{ColumnView{
		typ:  col.typ,
		data: col.data,
		mask: col.mask,
		rows: col.rows,
	}}
}

// Release frees the owned buffers. Varchar payload memory is freed per
// element. The column must not be used afterwards, nor any view into it.
func (col *Column) Release(alloc util.BytesAllocator) {
	if alloc == nil {
		alloc = col.alloc
	}
	if alloc == nil {
		alloc = util.GAlloc
	}
	if col.typ.GetInternalType().IsVarchar() && col.data != nil {
		strs := util.ToSlice[common.String](col.data, common.VarcharSize)
		for i := 0; i < col.rows; i++ {
			if col.RowIsValid(i) && util.PointerValid(strs[i].Data) {
				util.CFree(strs[i].Data)
			}
		}
	}
	if col.data != nil {
		alloc.Free(col.data)
		col.data = nil
	}
	col.DropMask()
	col.rows = 0
}

// ColumnSlice reinterprets the data buffer as elements. Valid for
// fixed-width layouts and for varchar headers.
func ColumnSlice[T any](col *Column) []T {
	return util.ToSlice[T](col.data, col.typ.GetInternalType().Size())
}

// typed builders, mostly for tests and the demo

func NewIntegerColumn(v []int32) *Column {
	col := NewColumn(common.IntegerType(), len(v), nil)
	copy(ColumnSlice[int32](col), v)
	return col
}

func NewBigintColumn(v []int64) *Column {
	col := NewColumn(common.BigintType(), len(v), nil)
	copy(ColumnSlice[int64](col), v)
	return col
}

func NewUbigintColumn(v []uint64) *Column {
	col := NewColumn(common.UbigintType(), len(v), nil)
	copy(ColumnSlice[uint64](col), v)
	return col
}

func NewDoubleColumn(v []float64) *Column {
	col := NewColumn(common.DoubleType(), len(v), nil)
	copy(ColumnSlice[float64](col), v)
	return col
}

func NewBooleanColumn(v []bool) *Column {
	col := NewColumn(common.BooleanType(), len(v), nil)
	copy(ColumnSlice[bool](col), v)
	return col
}

func NewVarcharColumn(v []string) *Column {
	col := NewColumn(common.VarcharType(), len(v), nil)
	data := ColumnSlice[common.String](col)
	for i := 0; i < len(v); i++ {
		dstMem := util.CMalloc(len(v[i]))
		dst := util.PointerToSlice[byte](dstMem, len(v[i]))
		copy(dst, v[i])
		data[i] = common.String{
			Data: dstMem,
			Len:  len(dst),
		}
	}
	return col
}

func NewDecimalColumn(v []common.Decimal, width, scale int) *Column {
	col := NewColumn(common.DecimalType(width, scale), len(v), nil)
	data := ColumnSlice[common.Decimal](col)
	copy(data, v)
	return col
}

func NewDateColumn(v []common.Date) *Column {
	col := NewColumn(common.DateType(), len(v), nil)
	copy(ColumnSlice[common.Date](col), v)
	return col
}

// SetNulls marks the given rows null. Builder helper.
func (col *Column) SetNulls(rows []int) *Column {
	for _, r := range rows {
		col.SetNull(r, true)
	}
	return col
}
