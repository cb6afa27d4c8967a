package systems

import (
	"github.com/gonewx/ghosttrail/pkg/components"
	"github.com/gonewx/ghosttrail/pkg/ecs"
)

// MovementSystem 按速度移动实体，并在边界内反弹
//
// 反弹时翻转水平速度的同时翻转精灵朝向（SpriteComponent.FlipX），
// 这样残影副本能拷贝到发射者的朝向变化。
type MovementSystem struct {
	entityManager *ecs.EntityManager

	// 活动区域（世界坐标）
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, minX, minY, maxX, maxY float64) *MovementSystem {
	return &MovementSystem{
		entityManager: em,
		MinX:          minX,
		MinY:          minY,
		MaxX:          maxX,
		MaxY:          maxY,
	}
}

// Update 移动所有拥有位置和速度组件的实体
func (s *MovementSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[
		*components.PositionComponent,
		*components.VelocityComponent,
	](s.entityManager)

	for _, id := range entities {
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		if !ok {
			continue
		}

		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime

		if pos.X < s.MinX {
			pos.X = s.MinX
			vel.VX = -vel.VX
		} else if pos.X > s.MaxX {
			pos.X = s.MaxX
			vel.VX = -vel.VX
		}
		if pos.Y < s.MinY {
			pos.Y = s.MinY
			vel.VY = -vel.VY
		} else if pos.Y > s.MaxY {
			pos.Y = s.MaxY
			vel.VY = -vel.VY
		}

		// 精灵朝向跟随水平速度
		if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok && vel.VX != 0 {
			sprite.FlipX = vel.VX < 0
		}
	}
}
