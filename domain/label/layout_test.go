package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLayout_RatingY(t *testing.T) {
	layout := DefaultLayout()
	expected := map[string]int{"A": 38, "B": 60, "C": 83, "D": 106, "E": 128}

	for grade, y := range expected {
		got, ok := layout.RatingY(grade)
		assert.True(t, ok, grade)
		assert.Equal(t, y, got, grade)
	}

	_, ok := layout.RatingY("F")
	assert.False(t, ok)
	_, ok = layout.RatingY("a")
	assert.False(t, ok, "lookups are case sensitive")
}

func TestDefaultLayout_IconX(t *testing.T) {
	layout := DefaultLayout()

	xs, ok := layout.IconX(1)
	assert.True(t, ok)
	assert.Equal(t, []int{73}, xs)

	xs, ok = layout.IconX(2)
	assert.True(t, ok)
	assert.Equal(t, []int{48, 124}, xs)

	xs, ok = layout.IconX(3)
	assert.True(t, ok)
	assert.Equal(t, []int{11, 87, 144}, xs)

	_, ok = layout.IconX(4)
	assert.False(t, ok)
}

func TestDefaultLayout_IconXReturnsCopy(t *testing.T) {
	xs, _ := DefaultLayout().IconX(3)
	xs[0] = 999

	again, _ := DefaultLayout().IconX(3)
	assert.Equal(t, 11, again[0])
}
