package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Float_Round(t *testing.T) {
	assert.Equal(t, Vec3{X: 3, Y: 0, Z: -3}, Vec3Float{X: 2.5, Y: 0.49, Z: -2.5}.Round(), "Половина округляется от нуля")
	assert.Equal(t, Vec3{X: 0, Y: 2, Z: -1}, Vec3Float{X: -0.4, Y: 1.6, Z: -0.6}.Round())
}

func TestVec2_FloorDiv(t *testing.T) {
	assert.Equal(t, Vec2{X: 0, Y: 0}, Vec2{X: 15, Y: 0}.FloorDiv(16))
	assert.Equal(t, Vec2{X: 1, Y: -1}, Vec2{X: 16, Y: -1}.FloorDiv(16), "Отрицательные координаты округляются вниз")
	assert.Equal(t, Vec2{X: -2, Y: -1}, Vec2{X: -17, Y: -16}.FloorDiv(16))
}

func TestVec3_AxisAccess(t *testing.T) {
	v := Vec3{X: 1, Y: 2, Z: 3}
	assert.Equal(t, 2, v.Get(1))
	assert.Equal(t, Vec3{X: 1, Y: 7, Z: 3}, v.With(1, 7))
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, v, "With не должен менять исходный вектор")

	f := Vec3Float{X: 0.5}
	assert.Equal(t, 0.5, f.Get(0))
	assert.Equal(t, Vec3Float{X: 0.5, Z: 4}, f.With(2, 4))
}

func TestVec2Float_ClampY(t *testing.T) {
	assert.Equal(t, Vec2Float{X: 400, Y: 90}, Vec2Float{X: 400, Y: 120}.ClampY(-90, 90))
	assert.Equal(t, Vec2Float{X: -5, Y: -90}, Vec2Float{X: -5, Y: -91}.ClampY(-90, 90))
}

func TestVec3_Neighbours(t *testing.T) {
	v := Vec3{X: 2, Y: -1, Z: 0}
	assert.Equal(t, Vec3{X: 2, Y: 0, Z: 0}, v.Up())
	assert.Equal(t, Vec3{X: 2, Y: -2, Z: 0}, v.Down())
	assert.Equal(t, Vec3{X: 1, Y: -1, Z: 0}, v.Left())
	assert.Equal(t, Vec3{X: 3, Y: -1, Z: 0}, v.Right())
	assert.Equal(t, Vec3{X: 2, Y: -1, Z: 1}, v.Front(), "Перед – по +Z")
	assert.Equal(t, Vec3{X: 2, Y: -1, Z: -1}, v.Back())
	assert.Equal(t, v.Up(), v.Add(Vec3{Y: 1}))
}
