// Copyright 2023-2024 daviszhen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import "math/bits"

// Bitmap is a per-row validity mask. One bit per row, 1 means the row
// holds a value, 0 means null. nil Bits means every row is valid.
type Bitmap struct {
	Bits []uint8
}

func (bm *Bitmap) Data() []uint8 {
	return bm.Bits
}

func (bm *Bitmap) Init(count int) {
	bm.Init2(count, GAlloc)
}

// Init2 is Init with an explicit allocator. Validity buffers of owned
// columns come from the column's allocator, not the global one.
func (bm *Bitmap) Init2(count int, alloc BytesAllocator) {
	if alloc == nil {
		alloc = GAlloc
	}
	cnt := EntryCount(count)
	bm.Bits = alloc.Alloc(cnt)
	Fill(bm.Bits, cnt, 0xFF)
}

func (bm *Bitmap) Invalid() bool {
	return len(bm.Bits) == 0
}

func (bm *Bitmap) GetEntry(eIdx uint64) uint8 {
	if bm.Invalid() {
		return 0xFF
	}
	return bm.Bits[eIdx]
}

func GetEntryIndex(idx uint64) (uint64, uint64) {
	return idx / 8, idx % 8
}

func EntryIsSet(e uint8, pos uint64) bool {
	return e&(1<<pos) != 0
}

func (bm *Bitmap) RowIsValidUnsafe(idx uint64) bool {
	eIdx, pos := GetEntryIndex(idx)
	e := bm.GetEntry(eIdx)
	return EntryIsSet(e, pos)
}

func (bm *Bitmap) RowIsValid(idx uint64) bool {
	if bm.Invalid() {
		return true
	}
	return bm.RowIsValidUnsafe(idx)
}

func (bm *Bitmap) SetValid(ridx uint64) {
	if bm.Invalid() {
		return
	}
	bm.SetValidUnsafe(ridx)
}

func (bm *Bitmap) Set(ridx uint64, valid bool) {
	if valid {
		bm.SetValid(ridx)
	} else {
		bm.SetInvalid(ridx)
	}
}

func (bm *Bitmap) SetValidUnsafe(ridx uint64) {
	eIdx, pos := GetEntryIndex(ridx)
	bm.Bits[eIdx] |= 1 << pos
}

func (bm *Bitmap) SetInvalid(ridx uint64) {
	if bm.Invalid() {
		bm.Init(max(DefaultVectorSize, int(ridx)+1))
	} else if int(ridx) >= len(bm.Bits)*8 {
		bm.Resize(len(bm.Bits)*8, int(ridx)+1)
	}
	bm.SetInvalidUnsafe(ridx)
}

func (bm *Bitmap) SetInvalidUnsafe(ridx uint64) {
	eIdx, pos := GetEntryIndex(ridx)
	bm.Bits[eIdx] &= ^(1 << pos)
}

func (bm *Bitmap) Reset() {
	bm.Bits = nil
}

func EntryCount(cnt int) int {
	return (cnt + 7) / 8
}

func SizeInBytes(cnt int) int {
	return EntryCount(cnt)
}

func (bm *Bitmap) Resize(old int, new int) {
	if new <= old {
		return
	}
	if bm.Bits != nil {
		ncnt := EntryCount(new)
		ocnt := EntryCount(old)
		newData := GAlloc.Alloc(ncnt)
		copy(newData, bm.Bits)
		for i := ocnt; i < ncnt; i++ {
			newData[i] = 0xFF
		}
		bm.Bits = newData
	} else {
		bm.Init(new)
	}
}

func (bm *Bitmap) PrepareSpace(cnt int) {
	if bm.Invalid() {
		bm.Init(cnt)
	}
}

func (bm *Bitmap) SetAllValid(cnt int) {
	bm.PrepareSpace(cnt)
	if cnt == 0 {
		return
	}
	lastEidx := EntryCount(cnt) - 1
	for i := 0; i < lastEidx; i++ {
		bm.Bits[i] = 0xFF
	}
	lastBits := cnt % 8
	if lastBits == 0 {
		bm.Bits[lastEidx] = 0xFF
	} else {
		bm.Bits[lastEidx] = ^(0xFF << lastBits)
	}
}

func (bm *Bitmap) AllValid() bool {
	return bm.Invalid()
}

func (bm *Bitmap) IsMaskSet() bool {
	return bm.Bits != nil
}

// CopyRange copies count validity bits from (other, srcOffset) into
// (bm, dstOffset). bm must have space for dstOffset+count bits.
func (bm *Bitmap) CopyRange(other *Bitmap, dstOffset, srcOffset, count uint64) {
	for i := uint64(0); i < count; i++ {
		bm.Set(dstOffset+i, other.RowIsValid(srcOffset+i))
	}
}

// CountValid returns the number of valid rows among
// [offset, offset+count) of the mask.
func (bm *Bitmap) CountValid(offset, count uint64) int {
	if bm.AllValid() {
		return int(count)
	}
	valid := 0
	i := offset
	// head to the next entry boundary
	for ; i < offset+count && i%8 != 0; i++ {
		if bm.RowIsValidUnsafe(i) {
			valid++
		}
	}
	for ; i+8 <= offset+count; i += 8 {
		valid += bits.OnesCount8(bm.Bits[i/8])
	}
	for ; i < offset+count; i++ {
		if bm.RowIsValidUnsafe(i) {
			valid++
		}
	}
	return valid
}
