package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmapSetGet(t *testing.T) {
	mask := &Bitmap{}
	assert.True(t, mask.RowIsValid(0))
	mask.Set(0, false)
	assert.False(t, mask.RowIsValid(0))
	assert.True(t, mask.IsMaskSet())
	mask.Set(0, true)
	assert.True(t, mask.RowIsValid(0))
	mask.Set(100, false)
	assert.False(t, mask.RowIsValid(100))
	assert.True(t, mask.RowIsValid(99))
}

func TestBitmapInitAllValid(t *testing.T) {
	mask := &Bitmap{}
	mask.Init(20)
	for i := 0; i < 20; i++ {
		assert.True(t, mask.RowIsValid(uint64(i)))
	}
}

func TestBitmapCountValid(t *testing.T) {
	mask := &Bitmap{}
	mask.Init(64)
	assert.Equal(t, 64, mask.CountValid(0, 64))
	assert.Equal(t, 10, mask.CountValid(3, 10))

	for _, i := range []uint64{0, 7, 8, 31, 63} {
		mask.SetInvalid(i)
	}
	assert.Equal(t, 59, mask.CountValid(0, 64))
	assert.Equal(t, 0, mask.CountValid(63, 1))
	assert.Equal(t, 6, mask.CountValid(1, 8))
	assert.Equal(t, 0, mask.CountValid(5, 0))
}

func TestBitmapCopyRange(t *testing.T) {
	src := &Bitmap{}
	src.Init(16)
	src.SetInvalid(2)
	src.SetInvalid(5)

	dst := &Bitmap{}
	dst.Init(16)
	dst.CopyRange(src, 8, 0, 8)
	assert.False(t, dst.RowIsValid(10))
	assert.False(t, dst.RowIsValid(13))
	assert.True(t, dst.RowIsValid(8))
	assert.True(t, dst.RowIsValid(2))
}

func TestBitmapSetInvalidGrows(t *testing.T) {
	mask := &Bitmap{}
	mask.Set(3000, false)
	assert.False(t, mask.RowIsValid(3000))
	assert.True(t, mask.RowIsValid(2999))

	mask.Set(5000, false)
	assert.False(t, mask.RowIsValid(5000))
	assert.False(t, mask.RowIsValid(3000))
	assert.True(t, mask.RowIsValid(4999))
}

func TestEntryCount(t *testing.T) {
	assert.Equal(t, 0, EntryCount(0))
	assert.Equal(t, 1, EntryCount(1))
	assert.Equal(t, 1, EntryCount(8))
	assert.Equal(t, 2, EntryCount(9))
}
