package systems

import (
	"github.com/gonewx/ghosttrail/pkg/components"
	"github.com/gonewx/ghosttrail/pkg/ecs"
)

// GhostTrailSystem 驱动所有残影拖尾
//
// 每帧对每个拥有 GhostTrailComponent 的实体调用一次 Controller.Tick，
// 由控制器推进副本淡出并按间隔生成新副本。
// 应在 MovementSystem 之后更新，使副本拷贝到本帧的最新位置。
type GhostTrailSystem struct {
	entityManager *ecs.EntityManager
}

// NewGhostTrailSystem 创建残影拖尾系统
func NewGhostTrailSystem(em *ecs.EntityManager) *GhostTrailSystem {
	return &GhostTrailSystem{
		entityManager: em,
	}
}

// Update 推进所有拖尾
func (s *GhostTrailSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.GhostTrailComponent](s.entityManager)

	for _, id := range entities {
		trail, ok := ecs.GetComponent[*components.GhostTrailComponent](s.entityManager, id)
		if !ok || trail.Controller == nil {
			continue
		}
		trail.Controller.Tick(deltaTime)
	}
}

// SetPlaying 开始或停止所有拖尾的自动生成
func (s *GhostTrailSystem) SetPlaying(playing bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.GhostTrailComponent](s.entityManager) {
		trail, ok := ecs.GetComponent[*components.GhostTrailComponent](s.entityManager, id)
		if !ok || trail.Controller == nil {
			continue
		}
		if playing {
			trail.Controller.Play()
		} else {
			trail.Controller.Stop()
		}
	}
}

// ActiveCopies 所有拖尾的活跃副本总数（调试显示用）
func (s *GhostTrailSystem) ActiveCopies() int {
	total := 0
	for _, id := range ecs.GetEntitiesWith1[*components.GhostTrailComponent](s.entityManager) {
		if trail, ok := ecs.GetComponent[*components.GhostTrailComponent](s.entityManager, id); ok && trail.Pool != nil {
			total += trail.Pool.ActiveCount()
		}
	}
	return total
}

// Clear 立即回收所有拖尾的活跃副本
func (s *GhostTrailSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.GhostTrailComponent](s.entityManager) {
		if trail, ok := ecs.GetComponent[*components.GhostTrailComponent](s.entityManager, id); ok && trail.Pool != nil {
			trail.Pool.Reset()
		}
	}
}
