package components

import "github.com/gonewx/ghosttrail/pkg/ghost"

// GhostTrailComponent 挂在发射者实体上的残影拖尾
//
// 每个发射者拥有私有的副本池和控制器，不与其他实体共享。
// GhostTrailSystem 每帧调用 Controller.Tick，RenderSystem 绘制 Pool 中的活跃副本。
type GhostTrailComponent struct {
	Preset     string                 // 预设名称（调试显示用）
	Pool       *ghost.SpritePool      // 副本池
	Controller *ghost.SpawnController // 生成控制器
}
