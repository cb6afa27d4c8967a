package ghost

import (
	"errors"
	"fmt"
)

// ErrPoolInitialized 池已经初始化过
var ErrPoolInitialized = errors.New("sprite pool already initialized")

// SpritePool 残影副本对象池
//
// 副本总数只增不减：
//   - 限制模式（limited=true）：容量固定为初始数量，池空时 Pop 返回 nil（丢弃请求）
//   - 非限制模式：池空时克隆模板创建新副本，永久扩容
//
// limited 标志在 Initialize 时确定，之后不可更改。
type SpritePool struct {
	copies      []*GhostSprite // 全部副本，按 index 排列
	idle        []*GhostSprite // 空闲栈
	template    Appearance
	limited     bool
	initialized bool
}

// NewSpritePool 创建未初始化的池，使用前必须调用 Initialize
func NewSpritePool() *SpritePool {
	return &SpritePool{}
}

// Initialize 预分配 initialCount 个空闲副本
//
// 参数：
//   - initialCount: 预分配数量（>= 0）
//   - limited: 是否启用限制模式
//   - template: 新副本克隆的外观模板
//
// 返回：
//   - error: 重复初始化或数量为负时返回错误，池保持不变
func (p *SpritePool) Initialize(initialCount int, limited bool, template Appearance) error {
	if p.initialized {
		return ErrPoolInitialized
	}
	if initialCount < 0 {
		return fmt.Errorf("initial count must be >= 0, got %d", initialCount)
	}

	p.template = template
	p.limited = limited
	p.copies = make([]*GhostSprite, 0, initialCount)
	p.idle = make([]*GhostSprite, 0, initialCount)

	for i := 0; i < initialCount; i++ {
		p.copies = append(p.copies, newGhostSprite(p, i, template))
	}
	// 逆序入栈，使第一次 Pop 拿到 index 0
	for i := initialCount - 1; i >= 0; i-- {
		p.idle = append(p.idle, p.copies[i])
	}

	p.initialized = true
	return nil
}

// Pop 取出一个副本并标记为活跃
//
// 返回 nil 表示限制模式下池已耗尽，这是准入控制而不是错误。
// 在 Initialize 之前调用属于调用方错误，会直接 panic。
func (p *SpritePool) Pop() *GhostSprite {
	if !p.initialized {
		panic("ghost: SpritePool.Pop called before Initialize")
	}

	var g *GhostSprite
	if n := len(p.idle); n > 0 {
		g = p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
	} else if p.limited {
		return nil
	} else {
		g = newGhostSprite(p, len(p.copies), p.template)
		p.copies = append(p.copies, g)
	}

	g.active = true
	g.elapsed = 0
	return g
}

// Return 回收副本：标记为空闲、停止渲染、清除淡出状态
//
// 幂等：重复回收已空闲的副本不做任何事。不属于本池的副本同样忽略。
func (p *SpritePool) Return(g *GhostSprite) {
	if g == nil || g.pool != p || !g.active {
		return
	}
	g.reset()
	p.idle = append(p.idle, g)
}

// Update 推进所有活跃副本的淡出
// 副本在淡出结束时自行调用 Return，这里只负责逐个转发时间
func (p *SpritePool) Update(deltaTime float64) {
	for _, g := range p.copies {
		if g.active {
			g.Update(deltaTime)
		}
	}
}

// ForEachActive 遍历活跃副本（按 index 顺序）
func (p *SpritePool) ForEachActive(fn func(g *GhostSprite)) {
	for _, g := range p.copies {
		if g.active {
			fn(g)
		}
	}
}

// Reset 立即回收所有活跃副本，副本本身保留
func (p *SpritePool) Reset() {
	for _, g := range p.copies {
		p.Return(g)
	}
}

// Len 副本总数（空闲 + 活跃）
func (p *SpritePool) Len() int { return len(p.copies) }

// IdleCount 空闲副本数量
func (p *SpritePool) IdleCount() int { return len(p.idle) }

// ActiveCount 活跃副本数量
func (p *SpritePool) ActiveCount() int { return len(p.copies) - len(p.idle) }

// Limited 是否为限制模式
func (p *SpritePool) Limited() bool { return p.limited }

// Initialized 是否已初始化
func (p *SpritePool) Initialized() bool { return p.initialized }
