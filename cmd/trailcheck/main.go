// trailcheck - 残影预设的无窗口模拟检查工具
//
// 以固定步长模拟发射者移动和残影生成，打印每个预设的生成/丢弃统计，
// 并校验生成节奏、限量模式容量和淡出透明度。
//
// Usage:
//
//	go run ./cmd/trailcheck [flags]
//
// Flags:
//
//	--presets <path>   预设文件（默认 data/ghost_trails.yaml）
//	--preset <name>    只检查指定预设（默认检查全部）
//	--seconds <n>      模拟时长（秒，默认 2）
//	--dt <n>           模拟步长（秒，默认 1/60）
//	--verbose          输出详细日志
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/gonewx/ghosttrail/pkg/components"
	"github.com/gonewx/ghosttrail/pkg/config"
	"github.com/gonewx/ghosttrail/pkg/ecs"
	"github.com/gonewx/ghosttrail/pkg/entities"
	"github.com/gonewx/ghosttrail/pkg/ghost"
	"github.com/gonewx/ghosttrail/pkg/systems"
)

var (
	presetsFlag = flag.String("presets", config.DefaultTrailPresetsPath, "Path to trail presets YAML")
	presetFlag  = flag.String("preset", "", "Only check the named preset")
	secondsFlag = flag.Float64("seconds", 2, "Simulated duration in seconds")
	dtFlag      = flag.Float64("dt", 1.0/60.0, "Simulation step in seconds")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

// ========== 检查报告 ==========

type checkReport struct {
	Preset  string
	Check   string
	Passed  bool
	Message string
}

var reports []checkReport

func addReport(preset, check string, passed bool, message string) {
	reports = append(reports, checkReport{Preset: preset, Check: check, Passed: passed, Message: message})
	status := "✗ FAIL"
	if passed {
		status = "✓ PASS"
	}
	fmt.Printf("%s | %-10s | %-18s | %s\n", status, preset, check, message)
}

// ========== 模拟 ==========

// simResult 单个预设的模拟结果
type simResult struct {
	Steps      int
	Spawned    int
	Dropped    int
	MaxActive  int
	PoolSize   int
	Limited    bool
	AlphaValid bool
}

// simulate 在独立的实体管理器中运行一个预设
func simulate(preset config.TrailPreset, seconds, dt float64) (simResult, error) {
	cfg, err := preset.ToGhostConfig()
	if err != nil {
		return simResult{}, err
	}

	em := ecs.NewEntityManager()
	margin := float64(config.EmitterMargin)
	movement := systems.NewMovementSystem(em, margin, margin,
		config.ScreenWidth-margin, config.ScreenHeight-margin)
	trails := systems.NewGhostTrailSystem(em)

	id, err := entities.NewGhostTrailEntity(em, nil,
		config.ScreenWidth/2, config.ScreenHeight/2, preset.Name, cfg)
	if err != nil {
		return simResult{}, err
	}
	em.AddComponent(id, &components.VelocityComponent{VX: config.EmitterSpeedX, VY: config.EmitterSpeedY})
	trails.SetPlaying(true)

	trail, _ := ecs.GetComponent[*components.GhostTrailComponent](em, id)

	res := simResult{AlphaValid: true}
	steps := int(math.Round(seconds / dt))
	for i := 0; i < steps; i++ {
		movement.Update(dt)
		trails.Update(dt)

		if n := trail.Pool.ActiveCount(); n > res.MaxActive {
			res.MaxActive = n
		}
		trail.Pool.ForEachActive(func(g *ghost.GhostSprite) {
			a := g.Color().A
			if a < 0 || a > cfg.InitialColor.A {
				res.AlphaValid = false
			}
		})
	}

	stats := trail.Controller.Stats()
	res.Steps = steps
	res.Spawned = stats.Spawned
	res.Dropped = stats.Dropped
	res.PoolSize = trail.Pool.Len()
	res.Limited = trail.Pool.Limited()
	return res, nil
}

// check 校验一个预设的模拟结果
func check(preset config.TrailPreset, res simResult, dt float64) {
	name := preset.Name

	// 没有追赶生成：倒计时在整数步上归零，每 k 步生成一次
	// 浮点累计误差可能让个别间隔多等一步，所以接受 [steps/(k+1), steps/k]
	k := math.Max(1, math.Ceil(preset.SpawnInterval/dt-1e-9))
	minAttempts := int(math.Floor(float64(res.Steps) / (k + 1)))
	maxAttempts := int(math.Floor(float64(res.Steps) / k))
	attempts := res.Spawned + res.Dropped
	passed := attempts >= minAttempts && attempts <= maxAttempts
	addReport(name, "spawn cadence", passed,
		fmt.Sprintf("attempts=%d expected %d..%d (interval %.3fs, dt %.4fs)", attempts, minAttempts, maxAttempts, preset.SpawnInterval, dt))

	if res.Limited {
		addReport(name, "limited capacity", res.PoolSize == preset.InitialCopies && res.MaxActive <= res.PoolSize,
			fmt.Sprintf("pool=%d max_active=%d dropped=%d", res.PoolSize, res.MaxActive, res.Dropped))
	} else {
		addReport(name, "no drops", res.Dropped == 0,
			fmt.Sprintf("pool=%d (initial %d) max_active=%d", res.PoolSize, preset.InitialCopies, res.MaxActive))
	}

	addReport(name, "alpha range", res.AlphaValid, "all active copies within [0, initial alpha]")
}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if *secondsFlag <= 0 || *dtFlag <= 0 {
		fmt.Fprintln(os.Stderr, "seconds 和 dt 必须大于 0")
		os.Exit(2)
	}

	presets, err := config.LoadTrailPresets(*presetsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载预设失败: %v\n", err)
		os.Exit(1)
	}

	var selected []config.TrailPreset
	if *presetFlag != "" {
		p, ok := presets.Preset(*presetFlag)
		if !ok {
			fmt.Fprintf(os.Stderr, "预设 '%s' 不存在，可选: %v\n", *presetFlag, presets.Names())
			os.Exit(1)
		}
		selected = append(selected, p)
	} else {
		selected = presets.Presets
	}

	fmt.Printf("模拟 %.2fs，步长 %.4fs，%d 个预设\n\n", *secondsFlag, *dtFlag, len(selected))

	for _, p := range selected {
		res, err := simulate(p, *secondsFlag, *dtFlag)
		if err != nil {
			addReport(p.Name, "setup", false, err.Error())
			continue
		}
		fmt.Printf("%-10s spawned=%-4d dropped=%-4d max_active=%-3d pool=%d limited=%v\n",
			p.Name, res.Spawned, res.Dropped, res.MaxActive, res.PoolSize, res.Limited)
		check(p, res, *dtFlag)
		fmt.Println()
	}

	failed := 0
	for _, r := range reports {
		if !r.Passed {
			failed++
		}
	}
	fmt.Printf("总计 %d 项检查，%d 项失败\n", len(reports), failed)
	if failed > 0 {
		os.Exit(1)
	}
}
