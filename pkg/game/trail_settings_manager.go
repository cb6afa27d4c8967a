package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// TrailSettings 残影演示的用户设置
type TrailSettings struct {
	// SelectedPreset 上次选择的预设名称，空字符串表示使用默认预设
	SelectedPreset string `yaml:"selectedPreset"`

	// AutoPlay 启动时是否自动开始生成
	AutoPlay bool `yaml:"autoPlay"`

	// TimeScale 模拟时间倍率（0.1 ~ 4.0），用于慢放观察淡出
	TimeScale float64 `yaml:"timeScale"`

	// ShowStats 是否显示调试统计
	ShowStats bool `yaml:"showStats"`
}

// DefaultTrailSettings 返回默认设置
func DefaultTrailSettings() *TrailSettings {
	return &TrailSettings{
		SelectedPreset: "",
		AutoPlay:       true,
		TimeScale:      1.0,
		ShowStats:      true,
	}
}

// 时间倍率范围
const (
	MinTimeScale = 0.1
	MaxTimeScale = 4.0
)

// 存储路径常量
const (
	trailSettingsObject   = "settings"
	trailSettingsProperty = "trail"
)

// TrailSettingsManager 设置管理器
// 负责残影设置的加载、保存和内存管理
type TrailSettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *TrailSettings
}

// NewTrailSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 加载失败不是致命错误，会记录日志并使用默认设置。
func NewTrailSettingsManager(gdataManager *gdata.Manager) *TrailSettingsManager {
	sm := &TrailSettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultTrailSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[TrailSettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或数据不存在时使用默认设置。
//
// 返回：
//   - error: 读取或反序列化失败时返回错误（设置已回退为默认值）
func (sm *TrailSettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultTrailSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(trailSettingsObject, trailSettingsProperty) {
		sm.settings = DefaultTrailSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(trailSettingsObject, trailSettingsProperty)
	if err != nil {
		sm.settings = DefaultTrailSettings()
		return fmt.Errorf("failed to load trail settings: %w", err)
	}

	// 以默认值为底，缺失字段保持默认
	loaded := DefaultTrailSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultTrailSettings()
		return fmt.Errorf("failed to unmarshal trail settings: %w", err)
	}
	loaded.TimeScale = clampTimeScale(loaded.TimeScale)

	sm.settings = loaded
	log.Printf("[TrailSettingsManager] Settings loaded: preset=%q autoPlay=%v timeScale=%.2f",
		loaded.SelectedPreset, loaded.AutoPlay, loaded.TimeScale)
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时直接返回 nil（降级模式，不报错）
func (sm *TrailSettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal trail settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(trailSettingsObject, trailSettingsProperty, data); err != nil {
		return fmt.Errorf("failed to save trail settings: %w", err)
	}

	log.Printf("[TrailSettingsManager] Settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *TrailSettingsManager) GetSettings() *TrailSettings {
	return sm.settings
}

// Persistent 是否能够持久化
func (sm *TrailSettingsManager) Persistent() bool {
	return sm.gdataManager != nil
}

// SetSelectedPreset 记录选择的预设（需调用 Save 持久化）
func (sm *TrailSettingsManager) SetSelectedPreset(name string) {
	sm.settings.SelectedPreset = name
}

// SetAutoPlay 设置启动时是否自动播放（需调用 Save 持久化）
func (sm *TrailSettingsManager) SetAutoPlay(enabled bool) {
	sm.settings.AutoPlay = enabled
}

// SetTimeScale 设置时间倍率，限制在 [MinTimeScale, MaxTimeScale]（需调用 Save 持久化）
func (sm *TrailSettingsManager) SetTimeScale(scale float64) {
	sm.settings.TimeScale = clampTimeScale(scale)
}

// SetShowStats 设置是否显示调试统计（需调用 Save 持久化）
func (sm *TrailSettingsManager) SetShowStats(enabled bool) {
	sm.settings.ShowStats = enabled
}

// clampTimeScale 将时间倍率限制在合法范围内，非正值回退为 1.0
func clampTimeScale(scale float64) float64 {
	if !(scale > 0) {
		return 1.0
	}
	if scale < MinTimeScale {
		return MinTimeScale
	}
	if scale > MaxTimeScale {
		return MaxTimeScale
	}
	return scale
}
