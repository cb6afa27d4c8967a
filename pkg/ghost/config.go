package ghost

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid ghost trail config")

// Config 残影效果的不可变配置
// 在 Setup 时传入一次，之后每帧不会重新读取
type Config struct {
	// InitialColor 副本生成时的颜色（alpha 为起始透明度）
	InitialColor Color
	// SpawnInterval 两次生成之间的间隔（秒，> 0）
	SpawnInterval float64
	// Lifespan 副本从生成到 alpha 归零的时间（秒，> 0）
	Lifespan float64
	// LimitSpawning 为 true 时池容量固定为 InitialCopies，池空时丢弃生成请求
	LimitSpawning bool
	// InitialCopies 预分配的副本数量（>= 0）
	InitialCopies int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		InitialColor:  Color{R: 1, G: 1, B: 1, A: 0.2},
		SpawnInterval: 0.025,
		Lifespan:      0.2,
		LimitSpawning: false,
		InitialCopies: 10,
	}
}

// Validate 校验配置
//
// 返回：
//   - error: 包装了 ErrInvalidConfig 的错误，说明具体字段
func (c Config) Validate() error {
	// NaN 比较结果为 false，使用取反写法一并拒绝
	if !(c.SpawnInterval > 0) {
		return fmt.Errorf("%w: spawn interval must be > 0, got %v", ErrInvalidConfig, c.SpawnInterval)
	}
	if !(c.Lifespan > 0) {
		return fmt.Errorf("%w: lifespan must be > 0, got %v", ErrInvalidConfig, c.Lifespan)
	}
	if c.InitialCopies < 0 {
		return fmt.Errorf("%w: initial copies must be >= 0, got %d", ErrInvalidConfig, c.InitialCopies)
	}
	if !c.InitialColor.valid() {
		return fmt.Errorf("%w: color channels must be within [0, 1], got %+v", ErrInvalidConfig, c.InitialColor)
	}
	return nil
}
