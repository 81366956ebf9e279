package copying

import (
	"golang.org/x/sync/errgroup"

	"github.com/daviszhen/tabular/pkg/column"
	"github.com/daviszhen/tabular/pkg/common"
	"github.com/daviszhen/tabular/pkg/util"
)

// PackedTable is one partition of a contiguous split: a table view whose
// every buffer, validity bits included, lives inside a single memory
// block. The view and the block are inseparable; Release frees the block
// and invalidates the view.
type PackedTable struct {
	view    *column.TableView
	block   []byte
	types   []common.LType
	rows    int
	layouts []packedLayout
}

func (pt *PackedTable) View() *column.TableView {
	return pt.view
}

// Block exposes the backing allocation, data and validity and varlen
// payload tightly packed. Fixed-width regions are position independent;
// varchar headers hold pointers into the block's own heap region, so a
// byte copy of the block is not directly readable. Relocate rebuilds a
// copy into a usable PackedTable.
func (pt *PackedTable) Block() []byte {
	return pt.block
}

// Relocate wraps a byte copy of pt's block in a new PackedTable,
// rebasing every varchar header onto the copy's heap. pt must still be
// live. block must be a copy of pt.Block() of the same length; the
// returned table owns it and reads nothing from pt afterwards.
func (pt *PackedTable) Relocate(block []byte) (*PackedTable, error) {
	if len(block) != len(pt.block) {
		return nil, common.ContractErrorf(
			"relocated block is %d bytes, want %d", len(block), len(pt.block))
	}
	views := make([]*column.ColumnView, len(pt.types))
	for c, typ := range pt.types {
		ity := typ.GetInternalType()
		lay := pt.layouts[c]
		data := block[lay.dataOff : lay.dataOff+pt.rows*ity.Size()]
		mask := &util.Bitmap{Bits: block[lay.maskOff : lay.maskOff+util.SizeInBytes(pt.rows)]}
		if ity.IsVarchar() {
			oldHeap := util.BytesSliceToPointer(pt.block[lay.heapOff:])
			newHeap := util.BytesSliceToPointer(block[lay.heapOff:])
			hdrs := util.ToSlice[common.String](data, common.VarcharSize)
			for i := 0; i < pt.rows; i++ {
				if mask.RowIsValidUnsafe(uint64(i)) && hdrs[i].Len > 0 {
					hdrs[i].Data = util.PointerAdd(newHeap, util.PointerDiff(hdrs[i].Data, oldHeap))
				}
			}
		}
		views[c] = column.NewColumnView(typ, data, mask, 0, pt.rows)
	}
	tv, err := column.NewTableView(views...)
	if err != nil {
		return nil, err
	}
	return &PackedTable{
		view:    tv,
		block:   block,
		types:   pt.types,
		rows:    pt.rows,
		layouts: pt.layouts,
	}, nil
}

func (pt *PackedTable) Release(alloc util.BytesAllocator) {
	if alloc == nil {
		alloc = util.GAlloc
	}
	if pt.block != nil {
		alloc.Free(pt.block)
		pt.block = nil
	}
	pt.view = nil
}

// region boundaries of one column inside a packed block
type packedLayout struct {
	dataOff int
	maskOff int
	heapOff int
	heapLen int
}

// layoutPartition computes each column's region offsets and the total
// block size for rows [begin, end). Regions start at allocator-aligned
// offsets; validity is always materialized in a packed block.
func layoutPartition(input *column.TableView, begin, end int, align int) ([]packedLayout, int) {
	rows := end - begin
	layouts := make([]packedLayout, input.ColumnCount())
	cursor := 0
	for c := 0; c < input.ColumnCount(); c++ {
		src := input.Column(c)
		pt := src.Typ().GetInternalType()
		layouts[c].dataOff = cursor
		cursor = util.AlignValue(cursor+rows*pt.Size(), align)
		layouts[c].maskOff = cursor
		cursor = util.AlignValue(cursor+util.SizeInBytes(rows), align)
		layouts[c].heapOff = cursor
		layouts[c].heapLen = opsFor(pt).packFootprint(src, begin, end)
		cursor = util.AlignValue(cursor+layouts[c].heapLen, align)
	}
	return layouts, cursor
}

// PackedFootprint is the exact block size ContiguousSplit would allocate
// for rows [begin, end) of input.
func PackedFootprint(input *column.TableView, begin, end int, env *Env) (int, error) {
	if begin < 0 || begin > end || end > input.Rows() {
		return 0, common.ContractErrorf(
			"partition [%d,%d) out of bounds for %d rows", begin, end, input.Rows())
	}
	_, total := layoutPartition(input, begin, end, env.alloc().Align())
	return total, nil
}

// packPartition deep-copies rows [begin, end) into one block.
func packPartition(input *column.TableView, begin, end int, env *Env) (*PackedTable, error) {
	rows := end - begin
	align := env.alloc().Align()
	layouts, total := layoutPartition(input, begin, end, align)
	block := env.alloc().Alloc(max(total, 1))

	views := make([]*column.ColumnView, input.ColumnCount())
	types := make([]common.LType, input.ColumnCount())
	for c := 0; c < input.ColumnCount(); c++ {
		src := input.Column(c)
		pt := src.Typ().GetInternalType()
		lay := layouts[c]

		data := block[lay.dataOff : lay.dataOff+rows*pt.Size()]
		heap := block[lay.heapOff : lay.heapOff+lay.heapLen]
		opsFor(pt).pack(src, begin, end, data, heap)

		mask := &util.Bitmap{Bits: block[lay.maskOff : lay.maskOff+util.SizeInBytes(rows)]}
		mask.SetAllValid(rows)
		for i := 0; i < rows; i++ {
			if !src.RowIsValid(begin + i) {
				mask.SetInvalidUnsafe(uint64(i))
			}
		}
		types[c] = src.Typ()
		views[c] = column.NewColumnView(src.Typ(), data, mask, 0, rows)
	}
	tv, err := column.NewTableView(views...)
	if err != nil {
		env.alloc().Free(block)
		return nil, err
	}
	return &PackedTable{
		view:    tv,
		block:   block,
		types:   types,
		rows:    rows,
		layouts: layouts,
	}, nil
}

// ContiguousSplit is SplitTable with deep-copied, tightly packed output:
// one allocation per partition holding every column's data, validity and
// varlen payload. Partitions have no pointers into the input and can be
// handed off or relocated wholesale.
func ContiguousSplit(input *column.TableView, splits []int, env *Env) ([]*PackedTable, error) {
	if err := checkSplitPoints(splits, input.Rows()); err != nil {
		return nil, err
	}
	bounds := make([]int, 0, len(splits)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, splits...)
	bounds = append(bounds, input.Rows())

	out := make([]*PackedTable, len(bounds)-1)
	err := env.run(func() error {
		g := errgroup.Group{}
		for i := 0; i+1 < len(bounds); i++ {
			i := i
			g.Go(func() error {
				pt, err := packPartition(input, bounds[i], bounds[i+1], env)
				if err != nil {
					return err
				}
				out[i] = pt
				return nil
			})
		}
		return g.Wait()
	})
	if err != nil {
		for _, pt := range out {
			if pt != nil {
				pt.Release(env.alloc())
			}
		}
		return nil, err
	}
	return out, nil
}

// Pack is the single-partition case: the whole table into one block.
func Pack(input *column.TableView, env *Env) (*PackedTable, error) {
	var out *PackedTable
	err := env.run(func() error {
		pt, err := packPartition(input, 0, input.Rows(), env)
		if err != nil {
			return err
		}
		out = pt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
