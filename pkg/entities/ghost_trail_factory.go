package entities

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/ghosttrail/pkg/components"
	"github.com/gonewx/ghosttrail/pkg/ecs"
	"github.com/gonewx/ghosttrail/pkg/ghost"
)

// EmitterSortOrder 发射者精灵的默认层内顺序
// 残影副本拷贝同样的排序值，渲染时副本排在发射者之下
const EmitterSortOrder = 10

// entityEmitter 把实体组件适配为 ghost.Emitter
// 每次查询都读取组件的最新值
type entityEmitter struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

// Appearance 从 SpriteComponent 生成外观快照
func (e *entityEmitter) Appearance() ghost.Appearance {
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](e.em, e.id)
	if !ok {
		return ghost.Appearance{}
	}
	return ghost.Appearance{
		Image:     sprite.Image,
		SortLayer: sprite.SortLayer,
		SortOrder: sprite.SortOrder,
		FlipX:     sprite.FlipX,
		FlipY:     sprite.FlipY,
	}
}

// Position 实体世界坐标，缺少组件时为原点
func (e *entityEmitter) Position() ghost.Vec2 {
	pos, ok := ecs.GetComponent[*components.PositionComponent](e.em, e.id)
	if !ok {
		return ghost.Vec2{}
	}
	return ghost.Vec2{X: pos.X, Y: pos.Y}
}

// Scale 实体缩放，缺少组件时为 (1, 1)
func (e *entityEmitter) Scale() ghost.Vec2 {
	scale, ok := ecs.GetComponent[*components.ScaleComponent](e.em, e.id)
	if !ok {
		return ghost.Vec2{X: 1, Y: 1}
	}
	return ghost.Vec2{X: scale.ScaleX, Y: scale.ScaleY}
}

// NewGhostTrailEntity 创建带残影拖尾的发射者实体
//
// 参数:
//   - em: 实体管理器
//   - image: 发射者精灵图像（可为 nil，此时副本不会被绘制）
//   - x, y: 初始世界坐标
//   - preset: 预设名称（仅用于显示）
//   - cfg: 残影配置
//
// 返回:
//   - ecs.EntityID: 创建的实体ID，失败返回 0
//   - error: 配置无效时返回错误，此时实体已被标记删除
func NewGhostTrailEntity(em *ecs.EntityManager, image *ebiten.Image, x, y float64, preset string, cfg ghost.Config) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.ScaleComponent{ScaleX: 1, ScaleY: 1})
	em.AddComponent(entityID, &components.SpriteComponent{
		Image:     image,
		SortOrder: EmitterSortOrder,
	})

	if err := AttachGhostTrail(em, entityID, preset, cfg); err != nil {
		em.DestroyEntity(entityID)
		return 0, err
	}

	return entityID, nil
}

// AttachGhostTrail 为已有实体挂载（或替换）残影拖尾
//
// 新拖尾拥有独立的副本池；替换时旧拖尾的活跃副本随旧池一起丢弃。
// 挂载成功后拖尾处于暂停状态，需要调用 Controller.Play 开始生成。
func AttachGhostTrail(em *ecs.EntityManager, id ecs.EntityID, preset string, cfg ghost.Config) error {
	if !em.IsAlive(id) {
		return fmt.Errorf("entity %d does not exist", id)
	}

	pool := ghost.NewSpritePool()
	controller := ghost.NewSpawnController(pool, &entityEmitter{em: em, id: id})
	if err := controller.Setup(cfg); err != nil {
		return fmt.Errorf("failed to set up ghost trail %q: %w", preset, err)
	}

	if old, ok := ecs.GetComponent[*components.GhostTrailComponent](em, id); ok {
		log.Printf("[GhostTrailFactory] 实体 %d 替换拖尾 %q -> %q（丢弃 %d 个活跃副本）",
			id, old.Preset, preset, old.Pool.ActiveCount())
	}

	em.AddComponent(id, &components.GhostTrailComponent{
		Preset:     preset,
		Pool:       pool,
		Controller: controller,
	})
	return nil
}
