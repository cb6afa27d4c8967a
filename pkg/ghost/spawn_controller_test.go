package ghost

import (
	"errors"
	"testing"
)

func cadenceConfig() Config {
	return Config{
		InitialColor:  Color{R: 1, G: 1, B: 1, A: 0.5},
		SpawnInterval: 0.5,
		Lifespan:      100,
		LimitSpawning: false,
		InitialCopies: 2,
	}
}

func TestSpawnControllerSetupGating(t *testing.T) {
	pool := NewSpritePool()
	c := NewSpawnController(pool, newFakeEmitter())

	c.Play()
	c.Tick(1)
	c.SpawnOnce()
	c.SpawnOnceAt(Vec2{X: 1, Y: 2})
	c.Stop()
	c.Tick(1)

	if c.State() != StateUninitialized {
		t.Errorf("State: got %v, want Uninitialized", c.State())
	}
	if c.IsPlaying() || c.IsReady() {
		t.Error("controller must not be playing or ready before Setup")
	}
	if pool.Initialized() {
		t.Error("pool must not be initialized before Setup")
	}
	if c.Stats() != (SpawnStats{}) {
		t.Errorf("Stats: got %+v, want zero", c.Stats())
	}
}

func TestSpawnControllerSetup(t *testing.T) {
	c, _ := newReadyController(cadenceConfig())

	if c.State() != StatePaused {
		t.Errorf("State: got %v, want Paused", c.State())
	}
	if c.IsPlaying() {
		t.Error("Setup must not start playing")
	}
	if c.Pool().Len() != 2 {
		t.Errorf("pool Len: got %d, want 2", c.Pool().Len())
	}

	if err := c.Setup(cadenceConfig()); err == nil {
		t.Error("second Setup should fail")
	}
}

func TestSpawnControllerSetupInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"零间隔", func(c *Config) { c.SpawnInterval = 0 }},
		{"负寿命", func(c *Config) { c.Lifespan = -1 }},
		{"负副本数", func(c *Config) { c.InitialCopies = -3 }},
		{"颜色越界", func(c *Config) { c.InitialColor.A = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := cadenceConfig()
			tt.mutate(&cfg)

			pool := NewSpritePool()
			c := NewSpawnController(pool, newFakeEmitter())
			err := c.Setup(cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Setup: got %v, want ErrInvalidConfig", err)
			}
			if c.IsReady() || pool.Initialized() {
				t.Error("failed Setup must leave controller uninitialized")
			}
		})
	}
}

// TestSpawnControllerCadence 固定 dt 下生成次数为 floor(总时间 / 间隔)，且不早于一个间隔
func TestSpawnControllerCadence(t *testing.T) {
	c, _ := newReadyController(cadenceConfig())
	c.Play()

	const dt = 0.25
	for tick := 1; tick <= 10; tick++ {
		c.Tick(dt)
		elapsed := float64(tick) * dt
		want := int(elapsed / 0.5)
		if got := c.Stats().Spawned; got != want {
			t.Fatalf("t=%.2f: spawned %d, want %d", elapsed, got, want)
		}
	}
}

func TestSpawnControllerCadenceSmallStep(t *testing.T) {
	cfg := cadenceConfig()
	cfg.SpawnInterval = 0.025
	c, _ := newReadyController(cfg)
	c.Play()

	// interval=0.025, dt=0.01：第 k 次生成发生在模拟时间 >= k*0.025
	spawns := 0
	for tick := 1; tick <= 30; tick++ {
		c.Tick(0.01)
		if c.Stats().Spawned > spawns {
			spawns = c.Stats().Spawned
			elapsed := float64(tick) * 0.01
			if elapsed+1e-9 < float64(spawns)*0.025 {
				t.Fatalf("spawn #%d at t=%.3f, before %.3f", spawns, elapsed, float64(spawns)*0.025)
			}
		}
	}
	if spawns == 0 {
		t.Fatal("no spawns happened")
	}
	if c.Stats().Spawned != 10 {
		t.Errorf("spawned %d over 0.3s, want 10 (one every third tick)", c.Stats().Spawned)
	}
}

func TestSpawnControllerNoCatchUp(t *testing.T) {
	c, _ := newReadyController(cadenceConfig())
	c.Play()

	// 一帧跨越 20 个间隔也只生成一个
	c.Tick(10)
	if c.Stats().Spawned != 1 {
		t.Errorf("spawned %d after a huge delta, want 1", c.Stats().Spawned)
	}
	if c.SpawnTimeLeft() != 0.5 {
		t.Errorf("countdown: got %v, want full interval 0.5", c.SpawnTimeLeft())
	}
}

func TestSpawnControllerPlayResetsCountdown(t *testing.T) {
	c, _ := newReadyController(cadenceConfig())
	c.Play()
	c.Tick(0.25)

	// 重新 Play 时重置为完整间隔
	c.Play()
	c.Tick(0.25)
	if c.Stats().Spawned != 0 {
		t.Fatalf("spawned before a full interval after restart: %d", c.Stats().Spawned)
	}
	c.Tick(0.25)
	if c.Stats().Spawned != 1 {
		t.Errorf("spawned %d, want 1", c.Stats().Spawned)
	}
}

func TestSpawnControllerStopHaltsSpawning(t *testing.T) {
	cfg := cadenceConfig()
	cfg.Lifespan = 1.0
	c, _ := newReadyController(cfg)

	c.Play()
	c.Tick(0.5)
	if c.Stats().Spawned != 1 {
		t.Fatalf("spawned %d, want 1", c.Stats().Spawned)
	}

	c.Stop()
	if c.IsPlaying() {
		t.Error("IsPlaying after Stop")
	}

	for i := 0; i < 8; i++ {
		c.Tick(0.25)
	}
	if c.Stats().Spawned != 1 {
		t.Errorf("spawned %d after Stop, want 1", c.Stats().Spawned)
	}
	// 已有副本照常淡出结束
	if c.Pool().ActiveCount() != 0 {
		t.Errorf("ActiveCount: got %d, want 0 after fade completes", c.Pool().ActiveCount())
	}

	c.Play()
	c.Tick(0.5)
	if c.Stats().Spawned != 2 {
		t.Errorf("spawned %d after Play resumed, want 2", c.Stats().Spawned)
	}
}

func TestSpawnControllerStopKeepsActiveCopiesFading(t *testing.T) {
	cfg := cadenceConfig()
	cfg.Lifespan = 1.0
	c, _ := newReadyController(cfg)

	c.SpawnOnce()
	c.Stop()
	c.Tick(0.5)

	var alpha float32
	c.Pool().ForEachActive(func(g *GhostSprite) { alpha = g.Color().A })
	if alpha != 0.25 {
		t.Errorf("alpha after 0.5s of a 1s fade: got %v, want 0.25", alpha)
	}
}

func TestSpawnControllerSpawnConfiguresCopy(t *testing.T) {
	cfg := cadenceConfig()
	cfg.InitialColor = Color{R: 0.5, G: 0.25, B: 1, A: 0.2}
	cfg.Lifespan = 0.75
	c, emitter := newReadyController(cfg)

	emitter.appearance = Appearance{SortLayer: 3, SortOrder: 9, FlipY: true}
	emitter.scale = Vec2{X: -2, Y: 2}
	emitter.position = Vec2{X: 100, Y: 50}

	c.SpawnOnce()
	c.SpawnOnceAt(Vec2{X: -5, Y: 7})

	// SpawnOnce 不要求处于播放状态
	if c.IsPlaying() {
		t.Error("manual spawn must not start playing")
	}

	var copies []*GhostSprite
	c.Pool().ForEachActive(func(g *GhostSprite) { copies = append(copies, g) })
	if len(copies) != 2 {
		t.Fatalf("active copies: got %d, want 2", len(copies))
	}

	first, second := copies[0], copies[1]
	if first.InitialColor() != cfg.InitialColor || first.Color() != cfg.InitialColor {
		t.Errorf("color: got %+v / %+v, want %+v", first.InitialColor(), first.Color(), cfg.InitialColor)
	}
	if first.Lifespan() != 0.75 {
		t.Errorf("lifespan: got %v, want 0.75", first.Lifespan())
	}
	if first.Appearance() != emitter.appearance {
		t.Errorf("appearance: got %+v, want %+v", first.Appearance(), emitter.appearance)
	}
	if first.Scale() != emitter.scale {
		t.Errorf("scale: got %+v, want %+v", first.Scale(), emitter.scale)
	}
	if first.Position() != (Vec2{X: 100, Y: 50}) {
		t.Errorf("SpawnOnce position: got %+v", first.Position())
	}
	if second.Position() != (Vec2{X: -5, Y: 7}) {
		t.Errorf("SpawnOnceAt position: got %+v", second.Position())
	}

	// 快照语义：之后发射者外观变化不影响已生成副本
	emitter.appearance.SortOrder = 42
	if first.Appearance().SortOrder != 9 {
		t.Error("spawned copy must keep its appearance snapshot")
	}
}

func TestSpawnControllerLimitedDropsSilently(t *testing.T) {
	cfg := cadenceConfig()
	cfg.LimitSpawning = true
	cfg.InitialCopies = 3
	c, _ := newReadyController(cfg)

	for i := 0; i < 5; i++ {
		c.SpawnOnce()
	}

	stats := c.Stats()
	if stats.Spawned != 3 || stats.Dropped != 2 {
		t.Errorf("Stats: got %+v, want Spawned=3 Dropped=2", stats)
	}
	if c.Pool().Len() != 3 || c.Pool().ActiveCount() != 3 {
		t.Errorf("pool: len=%d active=%d, want 3/3", c.Pool().Len(), c.Pool().ActiveCount())
	}
}

func TestSpawnControllerStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUninitialized, "Uninitialized"},
		{StatePaused, "Paused"},
		{StatePlaying, "Playing"},
		{State(9), "State(9)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}
