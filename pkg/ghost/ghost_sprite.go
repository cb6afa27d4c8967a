package ghost

// GhostSprite 一个可复用的残影副本
//
// 副本要么空闲（归池所有，不渲染），要么活跃（渲染中，自行倒计时淡出）。
// 淡出结束后副本通过 pool 反向引用把自己还给池；pool 只用于调用 Return，
// 并不表示所有权，所有副本始终归池所有。
type GhostSprite struct {
	pool  *SpritePool // 非所有权反向引用
	index int         // 在池中的固定序号

	active   bool
	elapsed  float64 // 已淡出时间（秒）
	lifespan float64 // 淡出总时长（秒）

	initialColor Color
	color        Color

	position   Vec2
	scale      Vec2
	appearance Appearance
}

func newGhostSprite(pool *SpritePool, index int, template Appearance) *GhostSprite {
	return &GhostSprite{
		pool:       pool,
		index:      index,
		scale:      Vec2{X: 1, Y: 1},
		appearance: template,
	}
}

// SetInitialColor 设置起始颜色，同时重置当前颜色
func (g *GhostSprite) SetInitialColor(c Color) {
	g.initialColor = c
	g.color = c
}

// SetLifespan 设置淡出总时长
func (g *GhostSprite) SetLifespan(seconds float64) {
	g.lifespan = seconds
}

// SetAppearance 拷贝发射者的外观快照
func (g *GhostSprite) SetAppearance(a Appearance) {
	g.appearance = a
}

// SetScale 设置局部缩放
func (g *GhostSprite) SetScale(s Vec2) {
	g.scale = s
}

// SetPosition 设置世界坐标
func (g *GhostSprite) SetPosition(p Vec2) {
	g.position = p
}

// Activate 开始渲染并启动淡出计时
func (g *GhostSprite) Activate() {
	g.elapsed = 0
	g.color = g.initialColor
	g.active = true
}

// Update 推进淡出计时
//
// alpha 在 [0, lifespan] 内从起始值线性降到 0；
// elapsed >= lifespan 时副本把自己还给池。空闲副本直接忽略。
func (g *GhostSprite) Update(deltaTime float64) {
	if !g.active {
		return
	}

	g.elapsed += deltaTime
	if g.lifespan <= 0 || g.elapsed >= g.lifespan {
		g.color.A = 0
		g.pool.Return(g)
		return
	}

	g.color.A = g.initialColor.A * float32(1-g.elapsed/g.lifespan)
}

// reset 清除淡出状态（由池在回收时调用）
func (g *GhostSprite) reset() {
	g.active = false
	g.elapsed = 0
	g.color = g.initialColor.WithAlpha(0)
}

// Active 是否正在渲染
func (g *GhostSprite) Active() bool { return g.active }

// Index 在池中的固定序号
func (g *GhostSprite) Index() int { return g.index }

// Elapsed 已淡出时间（秒）
func (g *GhostSprite) Elapsed() float64 { return g.elapsed }

// Lifespan 淡出总时长（秒）
func (g *GhostSprite) Lifespan() float64 { return g.lifespan }

// InitialColor 起始颜色
func (g *GhostSprite) InitialColor() Color { return g.initialColor }

// Color 当前颜色
func (g *GhostSprite) Color() Color { return g.color }

// Position 世界坐标
func (g *GhostSprite) Position() Vec2 { return g.position }

// Scale 局部缩放
func (g *GhostSprite) Scale() Vec2 { return g.scale }

// Appearance 生成时拷贝的外观快照
func (g *GhostSprite) Appearance() Appearance { return g.appearance }
