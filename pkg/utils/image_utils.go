package utils

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// NewEmitterImage 程序化生成发射者精灵
//
// 圆形主体加一个偏右的"眼睛"，便于在残影中看出水平翻转。
//
// 参数：
//   - size: 图像边长（像素）
//   - body: 主体颜色
//
// 返回：
//   - *ebiten.Image: 生成的图像，size <= 0 时返回 nil
func NewEmitterImage(size int, body color.Color) *ebiten.Image {
	if size <= 0 {
		return nil
	}

	img := ebiten.NewImage(size, size)
	half := float32(size) / 2

	vector.DrawFilledCircle(img, half, half, half-1, body, true)

	eye := float32(size) / 6
	vector.DrawFilledRect(img, half+eye/2, half-eye, eye, eye, color.Black, false)

	return img
}
