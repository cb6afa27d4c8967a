package ghost

import (
	"fmt"
	"log"
)

// State 控制器状态
type State int

const (
	// StateUninitialized Setup 之前，所有请求都被忽略
	StateUninitialized State = iota
	// StatePaused 已就绪但未播放（Setup 后的初始状态，以及 Stop 之后）
	StatePaused
	// StatePlaying 按间隔自动生成
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StatePaused:
		return "Paused"
	case StatePlaying:
		return "Playing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SpawnStats 生成计数
type SpawnStats struct {
	Spawned int // 成功生成的副本数
	Dropped int // 限制模式下因池耗尽被丢弃的请求数
}

// SpawnController 决定何时生成、如何配置副本，拥有播放/暂停状态
//
// Setup 之前的 Play/Stop/Tick/SpawnOnce 调用都是静默的空操作：
// 对逐帧视觉效果来说，丢一帧效果比崩溃更可取。
type SpawnController struct {
	pool    *SpritePool
	emitter Emitter

	config Config
	state  State

	spawnTimeLeft float64 // 距离下次生成的剩余时间（秒）
	stats         SpawnStats
}

// NewSpawnController 创建控制器
//
// 参数：
//   - pool: 未初始化的副本池，由 Setup 初始化
//   - emitter: 发射者协作方，提供外观、位置与缩放
func NewSpawnController(pool *SpritePool, emitter Emitter) *SpawnController {
	return &SpawnController{
		pool:    pool,
		emitter: emitter,
	}
}

// Setup 校验配置并初始化副本池，成功后进入就绪（暂停）状态
//
// 模板取自发射者当前外观。配置无效或池初始化失败时返回错误，控制器保持未初始化。
func (c *SpawnController) Setup(cfg Config) error {
	if c.state != StateUninitialized {
		return fmt.Errorf("spawn controller already set up")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := c.pool.Initialize(cfg.InitialCopies, cfg.LimitSpawning, c.emitter.Appearance()); err != nil {
		return fmt.Errorf("failed to initialize sprite pool: %w", err)
	}

	c.config = cfg
	c.spawnTimeLeft = cfg.SpawnInterval
	c.state = StatePaused
	log.Printf("[SpawnController] Ready: interval=%.3fs lifespan=%.3fs copies=%d limited=%v",
		cfg.SpawnInterval, cfg.Lifespan, cfg.InitialCopies, cfg.LimitSpawning)
	return nil
}

// Play 开始按间隔生成
// 倒计时重置为完整间隔，所以（重新）开始后的第一次生成总要等满一个间隔
func (c *SpawnController) Play() {
	if c.state == StateUninitialized {
		return
	}
	c.state = StatePlaying
	c.spawnTimeLeft = c.config.SpawnInterval
}

// Stop 立即停止生成，已生成的副本继续独立淡出
func (c *SpawnController) Stop() {
	if c.state == StateUninitialized {
		return
	}
	c.state = StatePaused
}

// Tick 推进一帧
//
// 先推进所有活跃副本的淡出（即使已停止），再处理生成倒计时：
// 倒计时 <= 0 时重置为完整间隔并生成一个副本。
// 无论 deltaTime 多大，一次 Tick 最多生成一个副本（不补发）。
func (c *SpawnController) Tick(deltaTime float64) {
	if c.state == StateUninitialized {
		return
	}

	c.pool.Update(deltaTime)

	if c.state != StatePlaying {
		return
	}

	c.spawnTimeLeft -= deltaTime
	if c.spawnTimeLeft > 0 {
		return
	}

	c.spawnTimeLeft = c.config.SpawnInterval
	c.spawn(c.emitter.Position())
}

// SpawnOnce 在发射者当前位置生成一个副本（不要求处于播放状态）
func (c *SpawnController) SpawnOnce() {
	if c.state == StateUninitialized {
		return
	}
	c.spawn(c.emitter.Position())
}

// SpawnOnceAt 在指定位置生成一个副本（不要求处于播放状态）
func (c *SpawnController) SpawnOnceAt(position Vec2) {
	if c.state == StateUninitialized {
		return
	}
	c.spawn(position)
}

// spawn 从池中取副本并按固定顺序配置后激活
// 池耗尽时跳过本次生成，不报错、不重试
func (c *SpawnController) spawn(position Vec2) *GhostSprite {
	g := c.pool.Pop()
	if g == nil {
		c.stats.Dropped++
		return nil
	}

	g.SetInitialColor(c.config.InitialColor)
	g.SetLifespan(c.config.Lifespan)
	g.SetAppearance(c.emitter.Appearance())
	g.SetScale(c.emitter.Scale())
	g.SetPosition(position)
	g.Activate()

	c.stats.Spawned++
	return g
}

// IsPlaying 是否正在自动生成
func (c *SpawnController) IsPlaying() bool { return c.state == StatePlaying }

// IsReady Setup 是否已完成
func (c *SpawnController) IsReady() bool { return c.state != StateUninitialized }

// State 当前状态
func (c *SpawnController) State() State { return c.state }

// Config Setup 时传入的配置
func (c *SpawnController) Config() Config { return c.config }

// Pool 副本池
func (c *SpawnController) Pool() *SpritePool { return c.pool }

// Stats 生成计数
func (c *SpawnController) Stats() SpawnStats { return c.stats }

// SpawnTimeLeft 距离下次生成的剩余时间（秒）
func (c *SpawnController) SpawnTimeLeft() float64 { return c.spawnTimeLeft }
