// Package ghost 实现残影（afterimage）拖尾效果的核心逻辑
//
// 两个协作组件：
//   - SpritePool: 持有可复用的残影副本，按需分配并在淡出结束后回收
//   - SpawnController: 负责生成节奏（倒计时）和副本配置，拥有播放/暂停状态
//
// 整个包是单线程、逐帧驱动的：外部循环每帧调用 SpawnController.Tick(deltaTime)。
// 包内没有任何锁，不允许在 Tick 之外并发调用 Pop/Return。
package ghost

import "github.com/hajimehoshi/ebiten/v2"

// Vec2 二维向量（世界坐标或缩放）
type Vec2 struct {
	X float64
	Y float64
}

// Color RGBA 颜色，各通道取值 0-1
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

// White 不透明白色
var White = Color{R: 1, G: 1, B: 1, A: 1}

// WithAlpha 返回替换了 alpha 通道的颜色
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// valid 检查所有通道是否在 [0, 1] 内
func (c Color) valid() bool {
	for _, v := range [...]float32{c.R, c.G, c.B, c.A} {
		if v < 0 || v > 1 || v != v {
			return false
		}
	}
	return true
}

// Appearance 发射者在某一时刻的外观快照
// 生成副本时按值拷贝，之后发射者外观的变化不会影响已生成的副本
type Appearance struct {
	Image     *ebiten.Image // 精灵纹理，可为 nil（无图副本不会被绘制）
	SortLayer int           // 渲染层
	SortOrder int           // 层内顺序
	FlipX     bool
	FlipY     bool
}

// Emitter 发射者协作方（引擎胶水层实现）
// SpawnController 在每次生成时查询，不缓存结果
type Emitter interface {
	// Appearance 当前外观快照
	Appearance() Appearance
	// Position 当前世界坐标
	Position() Vec2
	// Scale 当前局部缩放
	Scale() Vec2
}
