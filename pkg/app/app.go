// Package app 提供残影演示应用的核心包装器
//
// 该包是组合根：创建实体管理器、系统、残影发射者实体，
// 把 ebiten 的逐帧 Update 转换为各系统的 Update(deltaTime) 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/ghosttrail/pkg/components"
	"github.com/gonewx/ghosttrail/pkg/config"
	"github.com/gonewx/ghosttrail/pkg/ecs"
	"github.com/gonewx/ghosttrail/pkg/embedded"
	"github.com/gonewx/ghosttrail/pkg/entities"
	"github.com/gonewx/ghosttrail/pkg/game"
	"github.com/gonewx/ghosttrail/pkg/ghost"
	"github.com/gonewx/ghosttrail/pkg/systems"
	"github.com/gonewx/ghosttrail/pkg/utils"
)

// DefaultStorageName gdata 存储使用的应用名
const DefaultStorageName = "ghosttrail"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// PresetsPath 预设文件路径，为空则使用嵌入的 data/ghost_trails.yaml
	PresetsPath string
	// Preset 启动预设名称，为空则使用上次保存的选择或默认预设
	Preset string
	// StorageName gdata 存储的应用名，为空则不持久化设置
	StorageName string
}

// App 残影演示应用，实现 ebiten.Game 接口
type App struct {
	entityManager    *ecs.EntityManager
	movementSystem   *systems.MovementSystem
	ghostTrailSystem *systems.GhostTrailSystem
	renderSystem     *systems.RenderSystem
	settingsManager  *game.TrailSettingsManager

	presets      *config.TrailPresetFile
	presetNames  []string
	presetIndex  int
	emitterID    ecs.EntityID
	emitterImage *ebiten.Image

	playing       bool
	statusMessage string
}

// NewApp 创建并初始化演示应用
//
// 调用此函数前，如果未指定 PresetsPath，必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	presets, err := LoadPresets(cfg.PresetsPath)
	if err != nil {
		return nil, err
	}

	var gdataManager *gdata.Manager
	if cfg.StorageName != "" {
		gdataManager, err = gdata.Open(gdata.Config{AppName: cfg.StorageName})
		if err != nil {
			// 无法持久化不影响运行
			log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
			gdataManager = nil
		}
	}
	settingsManager := game.NewTrailSettingsManager(gdataManager)

	image := utils.NewEmitterImage(config.EmitterSize, config.EmitterColor)
	return newApp(presets, settingsManager, image, cfg.Preset)
}

// LoadPresets 加载预设文件：指定路径读磁盘，否则读嵌入资源
func LoadPresets(path string) (*config.TrailPresetFile, error) {
	if path != "" {
		presets, err := config.LoadTrailPresets(path)
		if err != nil {
			return nil, fmt.Errorf("预设加载失败: %w", err)
		}
		log.Printf("[Config] 加载残影预设: %s (%d 个)", path, len(presets.Presets))
		return presets, nil
	}

	data, err := embedded.ReadFile(config.DefaultTrailPresetsPath)
	if err != nil {
		return nil, fmt.Errorf("内置预设读取失败: %w", err)
	}
	presets, err := config.ParseTrailPresets(data, config.DefaultTrailPresetsPath)
	if err != nil {
		return nil, fmt.Errorf("内置预设解析失败: %w", err)
	}
	log.Printf("[Config] 加载内置残影预设 (%d 个)", len(presets.Presets))
	return presets, nil
}

// newApp 组装实体和系统（不依赖窗口，测试可直接调用）
func newApp(presets *config.TrailPresetFile, settingsManager *game.TrailSettingsManager, image *ebiten.Image, presetOverride string) (*App, error) {
	em := ecs.NewEntityManager()

	margin := float64(config.EmitterMargin)
	a := &App{
		entityManager: em,
		movementSystem: systems.NewMovementSystem(em,
			margin, margin,
			config.ScreenWidth-margin, config.ScreenHeight-margin),
		ghostTrailSystem: systems.NewGhostTrailSystem(em),
		renderSystem:     systems.NewRenderSystem(em),
		settingsManager:  settingsManager,
		presets:          presets,
		presetNames:      presets.Names(),
		emitterImage:     image,
	}

	// 预设选择优先级：命令行 > 保存的设置 > 文件默认
	name := presetOverride
	if name == "" {
		name = settingsManager.GetSettings().SelectedPreset
	}
	preset, ok := presets.Preset(name)
	if !ok {
		log.Printf("[App] Warning: 预设 %q 不存在，使用默认预设", name)
		preset, _ = presets.Preset("")
	}
	a.presetIndex = a.indexOf(preset.Name)

	cfg, err := preset.ToGhostConfig()
	if err != nil {
		return nil, err
	}

	a.emitterID, err = entities.NewGhostTrailEntity(em, image,
		config.ScreenWidth/2, config.ScreenHeight/2, preset.Name, cfg)
	if err != nil {
		return nil, err
	}
	em.AddComponent(a.emitterID, &components.VelocityComponent{
		VX: config.EmitterSpeedX,
		VY: config.EmitterSpeedY,
	})

	a.setPlaying(settingsManager.GetSettings().AutoPlay)
	a.updateStatusMessage()
	return a, nil
}

// Update 每个 tick 调用一次
func (a *App) Update() error {
	a.handleInput()
	a.step(1.0 / float64(ebiten.TPS()))
	return nil
}

// step 按时间倍率推进一帧
// 移动先于拖尾，副本拷贝到本帧最新位置
func (a *App) step(deltaTime float64) {
	dt := deltaTime * a.settingsManager.GetSettings().TimeScale
	a.movementSystem.Update(dt)
	a.ghostTrailSystem.Update(dt)
	a.entityManager.RemoveMarkedEntities()
}

// handleInput 处理键盘和鼠标输入
func (a *App) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.togglePlaying()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.spawnOnce()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.spawnAt(ghost.Vec2{X: float64(x), Y: float64(y)})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		a.cyclePreset(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		a.cyclePreset(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		a.scaleTime(2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		a.scaleTime(0.5)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.ghostTrailSystem.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		s := a.settingsManager.GetSettings()
		a.settingsManager.SetShowStats(!s.ShowStats)
		a.saveSettings()
	}
}

// togglePlaying 切换自动生成，并记住选择
func (a *App) togglePlaying() {
	a.setPlaying(!a.playing)
	a.settingsManager.SetAutoPlay(a.playing)
	a.saveSettings()
	a.updateStatusMessage()
}

func (a *App) setPlaying(playing bool) {
	a.playing = playing
	a.ghostTrailSystem.SetPlaying(playing)
}

// spawnOnce 在发射者当前位置手动生成一个副本
func (a *App) spawnOnce() {
	if trail, ok := ecs.GetComponent[*components.GhostTrailComponent](a.entityManager, a.emitterID); ok {
		trail.Controller.SpawnOnce()
	}
}

// spawnAt 在指定位置手动生成一个副本
func (a *App) spawnAt(pos ghost.Vec2) {
	if trail, ok := ecs.GetComponent[*components.GhostTrailComponent](a.entityManager, a.emitterID); ok {
		trail.Controller.SpawnOnceAt(pos)
	}
}

// cyclePreset 切换到相邻预设并重建拖尾
func (a *App) cyclePreset(step int) {
	n := len(a.presetNames)
	if n == 0 {
		return
	}
	a.selectPreset((a.presetIndex + step%n + n) % n)
}

// selectPreset 切换到指定序号的预设
func (a *App) selectPreset(index int) {
	name := a.presetNames[index]
	preset, _ := a.presets.Preset(name)

	cfg, err := preset.ToGhostConfig()
	if err != nil {
		log.Printf("[App] Warning: 预设 %q 无效: %v", name, err)
		return
	}
	if err := entities.AttachGhostTrail(a.entityManager, a.emitterID, name, cfg); err != nil {
		log.Printf("[App] Warning: 切换预设 %q 失败: %v", name, err)
		return
	}

	a.presetIndex = index
	// 新拖尾处于暂停状态，恢复之前的播放状态
	a.setPlaying(a.playing)

	a.settingsManager.SetSelectedPreset(name)
	a.saveSettings()
	a.updateStatusMessage()
	log.Printf("[App] 切换预设: %s", name)
}

// scaleTime 调整时间倍率
func (a *App) scaleTime(factor float64) {
	s := a.settingsManager.GetSettings()
	a.settingsManager.SetTimeScale(s.TimeScale * factor)
	a.saveSettings()
	a.updateStatusMessage()
}

func (a *App) saveSettings() {
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: 保存设置失败: %v", err)
	}
}

func (a *App) indexOf(name string) int {
	for i, n := range a.presetNames {
		if n == name {
			return i
		}
	}
	return 0
}

func (a *App) updateStatusMessage() {
	state := "stopped"
	if a.playing {
		state = "playing"
	}
	a.statusMessage = fmt.Sprintf("preset %d/%d: %s  [%s]  time x%.2f",
		a.presetIndex+1, len(a.presetNames), a.presetNames[a.presetIndex],
		state, a.settingsManager.GetSettings().TimeScale)
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	a.renderSystem.Draw(screen)

	msg := a.statusMessage
	if a.settingsManager.GetSettings().ShowStats {
		msg += "\n" + a.statsLine()
	}
	msg += "\nSpace play/stop  S spawn  Click spawn-at  Left/Right preset  Up/Down speed  R clear  Tab stats"
	ebitenutil.DebugPrint(screen, msg)
}

// statsLine 调试统计：池容量、活跃副本、生成与丢弃次数
func (a *App) statsLine() string {
	trail, ok := ecs.GetComponent[*components.GhostTrailComponent](a.entityManager, a.emitterID)
	if !ok {
		return ""
	}
	stats := trail.Controller.Stats()
	return fmt.Sprintf("pool %d (active %d, limited %v)  spawned %d  dropped %d  FPS %.0f",
		trail.Pool.Len(), trail.Pool.ActiveCount(), trail.Pool.Limited(),
		stats.Spawned, stats.Dropped, ebiten.ActualFPS())
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口，使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}
