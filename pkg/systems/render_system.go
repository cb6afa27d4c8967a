package systems

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/ghosttrail/pkg/components"
	"github.com/gonewx/ghosttrail/pkg/ecs"
	"github.com/gonewx/ghosttrail/pkg/ghost"
)

// RenderSystem 绘制发射者精灵和所有活跃的残影副本
//
// 排序规则：
//   - 先按 SortLayer，再按 SortOrder 升序绘制（后绘制的在上）
//   - 同一排序值下残影副本在发射者之下
//   - 副本之间越旧越先绘制，新副本覆盖旧副本
type RenderSystem struct {
	entityManager *ecs.EntityManager
	drawables     []drawable // 复用，避免每帧分配
}

// drawable 一次绘制调用需要的全部数据
type drawable struct {
	image   *ebiten.Image
	x, y    float64
	scaleX  float64
	scaleY  float64
	flipX   bool
	flipY   bool
	layer   int
	order   int
	isGhost bool
	elapsed float64
	color   ghost.Color
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		drawables:     make([]drawable, 0, 256),
	}
}

// Draw 绘制所有可见实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for i := range s.collect() {
		d := &s.drawables[i]
		if d.image == nil {
			continue
		}
		screen.DrawImage(d.image, d.options())
	}
}

// collect 收集本帧的绘制列表并排序
func (s *RenderSystem) collect() []drawable {
	s.drawables = s.drawables[:0]

	// 残影副本
	for _, id := range ecs.GetEntitiesWith1[*components.GhostTrailComponent](s.entityManager) {
		trail, ok := ecs.GetComponent[*components.GhostTrailComponent](s.entityManager, id)
		if !ok || trail.Pool == nil || !trail.Pool.Initialized() {
			continue
		}
		trail.Pool.ForEachActive(func(g *ghost.GhostSprite) {
			a := g.Appearance()
			pos := g.Position()
			scale := g.Scale()
			s.drawables = append(s.drawables, drawable{
				image:   a.Image,
				x:       pos.X,
				y:       pos.Y,
				scaleX:  scale.X,
				scaleY:  scale.Y,
				flipX:   a.FlipX,
				flipY:   a.FlipY,
				layer:   a.SortLayer,
				order:   a.SortOrder,
				isGhost: true,
				elapsed: g.Elapsed(),
				color:   g.Color(),
			})
		})
	}

	// 发射者精灵
	for _, id := range ecs.GetEntitiesWith2[*components.SpriteComponent, *components.PositionComponent](s.entityManager) {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		scaleX, scaleY := 1.0, 1.0
		if scale, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id); ok {
			scaleX, scaleY = scale.ScaleX, scale.ScaleY
		}

		s.drawables = append(s.drawables, drawable{
			image:  sprite.Image,
			x:      pos.X,
			y:      pos.Y,
			scaleX: scaleX,
			scaleY: scaleY,
			flipX:  sprite.FlipX,
			flipY:  sprite.FlipY,
			layer:  sprite.SortLayer,
			order:  sprite.SortOrder,
			color:  ghost.White,
		})
	}

	sort.SliceStable(s.drawables, func(i, j int) bool {
		a, b := &s.drawables[i], &s.drawables[j]
		if a.layer != b.layer {
			return a.layer < b.layer
		}
		if a.order != b.order {
			return a.order < b.order
		}
		if a.isGhost != b.isGhost {
			return a.isGhost
		}
		return a.elapsed > b.elapsed
	})

	return s.drawables
}

// options 构建绘制选项：以图像中心为锚点缩放/翻转，再平移到世界坐标
func (d *drawable) options() *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}

	bounds := d.image.Bounds()
	op.GeoM.Translate(-float64(bounds.Dx())/2, -float64(bounds.Dy())/2)

	sx, sy := d.scaleX, d.scaleY
	if d.flipX {
		sx = -sx
	}
	if d.flipY {
		sy = -sy
	}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(d.x, d.y)

	// ColorScale 使用预乘 alpha
	c := d.color
	op.ColorScale.Scale(c.R*c.A, c.G*c.A, c.B*c.A, c.A)
	return op
}
