package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/ghosttrail/pkg/ghost"
)

// DefaultTrailPresetsPath 内置残影预设文件路径
const DefaultTrailPresetsPath = "data/ghost_trails.yaml"

// TrailPresetFile 残影预设文件的顶层结构
type TrailPresetFile struct {
	// DefaultPreset 未指定预设时使用的名称（可选，缺省为第一个预设）
	DefaultPreset string `yaml:"default_preset,omitempty"`

	// Presets 预设列表
	Presets []TrailPreset `yaml:"presets"`
}

// TrailPreset 单个残影预设
type TrailPreset struct {
	// Name 预设名称（代码和命令行中引用）
	Name string `yaml:"name"`

	// DisplayName 显示名称（可选）
	DisplayName string `yaml:"display_name,omitempty"`

	// InitialColor 起始颜色
	// 支持 "#RRGGBB"、"#RRGGBBAA"，或颜色名加可选透明度，如 "white@0.2"
	InitialColor string `yaml:"initial_color"`

	// SpawnInterval 生成间隔（秒）
	SpawnInterval float64 `yaml:"spawn_interval"`

	// Lifespan 副本寿命（秒）
	Lifespan float64 `yaml:"lifespan"`

	// LimitSpawning 是否限制副本数量
	LimitSpawning bool `yaml:"limit_spawning"`

	// InitialCopies 预分配副本数量
	InitialCopies int `yaml:"initial_copies"`
}

// LoadTrailPresets 从 YAML 文件加载残影预设
//
// 参数：
//   - path: 配置文件路径
//
// 返回：
//   - *TrailPresetFile: 解析并验证后的预设
//   - error: 读取、解析或验证错误
func LoadTrailPresets(path string) (*TrailPresetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取残影配置文件 %s: %w", path, err)
	}
	return ParseTrailPresets(data, path)
}

// ParseTrailPresets 从内存数据解析残影预设（用于嵌入资源）
// source 仅用于错误信息
func ParseTrailPresets(data []byte, source string) (*TrailPresetFile, error) {
	var file TrailPresetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("无法解析残影配置文件 %s: %w", source, err)
	}

	if err := validateTrailPresets(&file); err != nil {
		return nil, fmt.Errorf("残影配置文件 %s 验证失败: %w", source, err)
	}

	return &file, nil
}

// validateTrailPresets 验证预设列表：名称唯一、颜色可解析、数值合法
func validateTrailPresets(file *TrailPresetFile) error {
	if len(file.Presets) == 0 {
		return fmt.Errorf("'presets' 列表为空")
	}

	names := make(map[string]bool, len(file.Presets))
	for i, preset := range file.Presets {
		if preset.Name == "" {
			return fmt.Errorf("预设 #%d 缺少 'name' 字段", i)
		}
		if names[preset.Name] {
			return fmt.Errorf("预设名称 '%s' 重复", preset.Name)
		}
		names[preset.Name] = true

		if _, err := preset.ToGhostConfig(); err != nil {
			return fmt.Errorf("预设 '%s': %w", preset.Name, err)
		}
	}

	if file.DefaultPreset != "" && !names[file.DefaultPreset] {
		return fmt.Errorf("默认预设 '%s' 不存在", file.DefaultPreset)
	}

	return nil
}

// Preset 按名称查找预设
// name 为空时返回默认预设
func (f *TrailPresetFile) Preset(name string) (TrailPreset, bool) {
	if name == "" {
		name = f.DefaultPreset
	}
	if name == "" && len(f.Presets) > 0 {
		return f.Presets[0], true
	}
	for _, p := range f.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return TrailPreset{}, false
}

// Names 按文件顺序返回所有预设名称
func (f *TrailPresetFile) Names() []string {
	names := make([]string, 0, len(f.Presets))
	for _, p := range f.Presets {
		names = append(names, p.Name)
	}
	return names
}

// ToGhostConfig 转换为 ghost.Config 并校验
func (p TrailPreset) ToGhostConfig() (ghost.Config, error) {
	color, err := ParseColor(p.InitialColor)
	if err != nil {
		return ghost.Config{}, err
	}

	cfg := ghost.Config{
		InitialColor:  color,
		SpawnInterval: p.SpawnInterval,
		Lifespan:      p.Lifespan,
		LimitSpawning: p.LimitSpawning,
		InitialCopies: p.InitialCopies,
	}
	if err := cfg.Validate(); err != nil {
		return ghost.Config{}, err
	}
	return cfg, nil
}

// ParseColor 解析颜色字符串
//
// 支持的格式：
//   - "#RRGGBB" / "#RRGGBBAA"
//   - 颜色名（golang.org/x/image/colornames），如 "white"
//   - 颜色名加透明度，如 "cyan@0.35"
func ParseColor(s string) (ghost.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ghost.Color{}, fmt.Errorf("颜色为空")
	}

	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}

	name, alphaStr, hasAlpha := strings.Cut(s, "@")
	rgba, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ghost.Color{}, fmt.Errorf("未知颜色名 '%s'", name)
	}

	c := ghost.Color{
		R: float32(rgba.R) / 255,
		G: float32(rgba.G) / 255,
		B: float32(rgba.B) / 255,
		A: float32(rgba.A) / 255,
	}
	if hasAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(alphaStr), 32)
		if err != nil {
			return ghost.Color{}, fmt.Errorf("无效透明度 '%s': %w", alphaStr, err)
		}
		if a < 0 || a > 1 {
			return ghost.Color{}, fmt.Errorf("透明度 %v 超出 [0, 1]", a)
		}
		c.A = float32(a)
	}
	return c, nil
}

// parseHexColor 解析 "#RRGGBB" 或 "#RRGGBBAA"
func parseHexColor(s string) (ghost.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return ghost.Color{}, fmt.Errorf("无效十六进制颜色 '%s'", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ghost.Color{}, fmt.Errorf("无效十六进制颜色 '%s': %w", s, err)
	}

	return ghost.Color{
		R: float32((v>>24)&0xff) / 255,
		G: float32((v>>16)&0xff) / 255,
		B: float32((v>>8)&0xff) / 255,
		A: float32(v&0xff) / 255,
	}, nil
}
