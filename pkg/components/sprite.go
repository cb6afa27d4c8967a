package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体的视觉表现
// 残影副本生成时会拷贝这里的全部字段作为外观快照
type SpriteComponent struct {
	Image *ebiten.Image

	// 渲染排序：先按 SortLayer，再按 SortOrder，值越大越靠上
	SortLayer int
	SortOrder int

	// 水平/垂直翻转（如角色朝向）
	FlipX bool
	FlipY bool
}
