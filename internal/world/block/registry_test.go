package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPalette(t *testing.T) {
	assert.Equal(t, []BlockID{StoneBlockID, GrassBlockID, SandBlockID, BrickBlockID}, Palette(),
		"Палитра содержит только твёрдые блоки в порядке ID")
}

func TestPlaceableAndBreakable(t *testing.T) {
	assert.False(t, IsPlaceable(AirBlockID), "Воздух нельзя поставить")
	assert.False(t, IsPlaceable(BlockID(999)), "Неизвестный ID нельзя поставить")
	assert.True(t, IsPlaceable(BrickBlockID))

	stone, ok := Get(StoneBlockID)
	assert.True(t, ok)
	assert.False(t, stone.Breakable(), "Камень неразрушаем")

	sand, _ := Get(SandBlockID)
	assert.True(t, sand.Breakable())
}

func TestNameLookup(t *testing.T) {
	assert.Equal(t, "GRASS", Name(GrassBlockID))
	assert.Equal(t, "unknown", Name(BlockID(500)))

	id, ok := Lookup("BRICK")
	assert.True(t, ok)
	assert.Equal(t, BrickBlockID, id)

	_, ok = Lookup("WATER")
	assert.False(t, ok)
}
