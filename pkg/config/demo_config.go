package config

import "image/color"

// 演示窗口与发射者参数
const (
	// ScreenWidth 逻辑屏幕宽度（像素）
	ScreenWidth = 960

	// ScreenHeight 逻辑屏幕高度（像素）
	ScreenHeight = 540

	// EmitterSize 发射者精灵边长（像素）
	EmitterSize = 48

	// EmitterSpeedX 发射者初始水平速度（像素/秒）
	EmitterSpeedX = 360.0

	// EmitterSpeedY 发射者初始垂直速度（像素/秒）
	EmitterSpeedY = 210.0

	// EmitterMargin 发射者活动区域与屏幕边缘的距离（像素）
	// 取精灵半边长，使精灵不会越出屏幕
	EmitterMargin = EmitterSize / 2
)

// BackgroundColor 演示背景色
var BackgroundColor = color.RGBA{R: 24, G: 26, B: 38, A: 255}

// EmitterColor 发射者精灵主体颜色
var EmitterColor = color.RGBA{R: 240, G: 240, B: 255, A: 255}
