package entities

import (
	"testing"

	"github.com/gonewx/ghosttrail/pkg/components"
	"github.com/gonewx/ghosttrail/pkg/ecs"
	"github.com/gonewx/ghosttrail/pkg/ghost"
)

func testConfig() ghost.Config {
	cfg := ghost.DefaultConfig()
	cfg.InitialCopies = 3
	cfg.LimitSpawning = true
	return cfg
}

// TestNewGhostTrailEntity 测试发射者实体创建
func TestNewGhostTrailEntity(t *testing.T) {
	em := ecs.NewEntityManager()

	id, err := NewGhostTrailEntity(em, nil, 120, 80, "classic", testConfig())
	if err != nil {
		t.Fatalf("NewGhostTrailEntity() error = %v", err)
	}
	if id == 0 {
		t.Fatal("Expected valid entity ID, got 0")
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok || pos.X != 120 || pos.Y != 80 {
		t.Errorf("PositionComponent: got %+v ok=%v", pos, ok)
	}

	sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id)
	if !ok || sprite.SortOrder != EmitterSortOrder {
		t.Errorf("SpriteComponent: got %+v ok=%v", sprite, ok)
	}

	trail, ok := ecs.GetComponent[*components.GhostTrailComponent](em, id)
	if !ok {
		t.Fatal("GhostTrailComponent missing")
	}
	if trail.Preset != "classic" {
		t.Errorf("Preset: got %q, want classic", trail.Preset)
	}
	if !trail.Controller.IsReady() || trail.Controller.IsPlaying() {
		t.Errorf("controller should be ready and paused, got %v", trail.Controller.State())
	}
	if trail.Pool.Len() != 3 || !trail.Pool.Limited() {
		t.Errorf("pool: len=%d limited=%v, want 3/true", trail.Pool.Len(), trail.Pool.Limited())
	}
}

// TestNewGhostTrailEntityInvalidConfig 无效配置时实体被标记删除
func TestNewGhostTrailEntityInvalidConfig(t *testing.T) {
	em := ecs.NewEntityManager()

	cfg := testConfig()
	cfg.SpawnInterval = 0

	id, err := NewGhostTrailEntity(em, nil, 0, 0, "broken", cfg)
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
	if id != 0 {
		t.Errorf("id: got %d, want 0", id)
	}

	em.RemoveMarkedEntities()
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount after cleanup: got %d, want 0", em.EntityCount())
	}
}

func TestNewGhostTrailEntityNilManager(t *testing.T) {
	if _, err := NewGhostTrailEntity(nil, nil, 0, 0, "x", testConfig()); err == nil {
		t.Error("expected error for nil entity manager")
	}
}

// TestEntityEmitterReadsLiveComponents 生成时读取发射者组件的最新值
func TestEntityEmitterReadsLiveComponents(t *testing.T) {
	em := ecs.NewEntityManager()
	id, err := NewGhostTrailEntity(em, nil, 10, 10, "classic", testConfig())
	if err != nil {
		t.Fatalf("NewGhostTrailEntity() error = %v", err)
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	scale, _ := ecs.GetComponent[*components.ScaleComponent](em, id)
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
	pos.X, pos.Y = 300, 200
	scale.ScaleX = -1
	sprite.FlipX = true
	sprite.SortLayer = 2

	trail, _ := ecs.GetComponent[*components.GhostTrailComponent](em, id)
	trail.Controller.SpawnOnce()

	var spawned *ghost.GhostSprite
	trail.Pool.ForEachActive(func(g *ghost.GhostSprite) { spawned = g })
	if spawned == nil {
		t.Fatal("no copy spawned")
	}
	if spawned.Position() != (ghost.Vec2{X: 300, Y: 200}) {
		t.Errorf("Position: got %+v", spawned.Position())
	}
	if spawned.Scale() != (ghost.Vec2{X: -1, Y: 1}) {
		t.Errorf("Scale: got %+v", spawned.Scale())
	}
	a := spawned.Appearance()
	if !a.FlipX || a.SortLayer != 2 || a.SortOrder != EmitterSortOrder {
		t.Errorf("Appearance: got %+v", a)
	}
}

func TestEntityEmitterDefaults(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	emitter := &entityEmitter{em: em, id: id}

	if emitter.Position() != (ghost.Vec2{}) {
		t.Errorf("Position default: got %+v", emitter.Position())
	}
	if emitter.Scale() != (ghost.Vec2{X: 1, Y: 1}) {
		t.Errorf("Scale default: got %+v", emitter.Scale())
	}
	if emitter.Appearance() != (ghost.Appearance{}) {
		t.Errorf("Appearance default: got %+v", emitter.Appearance())
	}
}

// TestAttachGhostTrailReplaces 替换拖尾时使用新的独立副本池
func TestAttachGhostTrailReplaces(t *testing.T) {
	em := ecs.NewEntityManager()
	id, err := NewGhostTrailEntity(em, nil, 0, 0, "classic", testConfig())
	if err != nil {
		t.Fatalf("NewGhostTrailEntity() error = %v", err)
	}
	oldTrail, _ := ecs.GetComponent[*components.GhostTrailComponent](em, id)

	cfg := testConfig()
	cfg.InitialCopies = 7
	cfg.LimitSpawning = false
	if err := AttachGhostTrail(em, id, "dash", cfg); err != nil {
		t.Fatalf("AttachGhostTrail() error = %v", err)
	}

	newTrail, _ := ecs.GetComponent[*components.GhostTrailComponent](em, id)
	if newTrail == oldTrail || newTrail.Pool == oldTrail.Pool {
		t.Fatal("expected a fresh trail with its own pool")
	}
	if newTrail.Preset != "dash" || newTrail.Pool.Len() != 7 || newTrail.Pool.Limited() {
		t.Errorf("new trail: preset=%q len=%d limited=%v", newTrail.Preset, newTrail.Pool.Len(), newTrail.Pool.Limited())
	}

	if err := AttachGhostTrail(em, 999, "dash", cfg); err == nil {
		t.Error("expected error for unknown entity")
	}
}
