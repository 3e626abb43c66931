package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FishingTuning 钓鱼小游戏调参配置
//
// 包含咬钩计时、收线条物理、鱼标运动和进度速率。
// 长度单位为像素，速度单位为像素/秒，时间除特别标注外为秒。
//
// 配置文件位置: data/fishing/tuning.yaml
type FishingTuning struct {
	// 咬钩计时（毫秒）
	BiteBaseWaitMs   float64 `yaml:"biteBaseWaitMs"`
	BiteRandomWaitMs float64 `yaml:"biteRandomWaitMs"`
	StrikeWindowMs   float64 `yaml:"strikeWindowMs"`

	// 小游戏框体
	FrameWidth float64 `yaml:"frameWidth"`
	BarWidth   float64 `yaml:"barWidth"`
	FishWidth  float64 `yaml:"fishWidth"`

	// 收线条：速度以 1-(1-accel)^(dt·60) 的系数趋近目标
	BarMaxSpeed     float64 `yaml:"barMaxSpeed"`
	BarAcceleration float64 `yaml:"barAcceleration"`

	// 鱼标：目标速度 = power × rand[min,max) × FishSpeedFactor
	FishAcceleration    float64 `yaml:"fishAcceleration"`
	FishSpeedFactor     float64 `yaml:"fishSpeedFactor"`
	FishRandomFactorMin float64 `yaml:"fishRandomFactorMin"`
	FishRandomFactorMax float64 `yaml:"fishRandomFactorMax"`
	FishMoveIntervalMin float64 `yaml:"fishMoveIntervalMin"`
	FishMoveIntervalMax float64 `yaml:"fishMoveIntervalMax"`
	DirectionFlipChance float64 `yaml:"directionFlipChance"`

	// 进度：重叠时增加，不重叠时减少（减少更快）
	CatchProgressIncreaseRate float64 `yaml:"catchProgressIncreaseRate"`
	CatchProgressDecreaseRate float64 `yaml:"catchProgressDecreaseRate"`
	InitialProgressRatio      float64 `yaml:"initialProgressRatio"`

	// 逃跑动画时长
	FailAnimationSeconds float64 `yaml:"failAnimationSeconds"`
}

// DefaultFishingTuning 返回内置默认调参
func DefaultFishingTuning() *FishingTuning {
	return &FishingTuning{
		BiteBaseWaitMs:   5000,
		BiteRandomWaitMs: 5000,
		StrikeWindowMs:   2000,

		FrameWidth: 400,
		BarWidth:   80,
		FishWidth:  24,

		BarMaxSpeed:     320,
		BarAcceleration: 0.15,

		FishAcceleration:    0.05,
		FishSpeedFactor:     15,
		FishRandomFactorMin: 0.2,
		FishRandomFactorMax: 1.0,
		FishMoveIntervalMin: 0.5,
		FishMoveIntervalMax: 2.0,
		DirectionFlipChance: 0.5,

		CatchProgressIncreaseRate: 50,
		CatchProgressDecreaseRate: 150,
		InitialProgressRatio:      0.3,

		FailAnimationSeconds: 2.0,
	}
}

// LoadFishingTuning 加载调参配置
//
// 文件中未出现的字段保留默认值。
func LoadFishingTuning(path string) (*FishingTuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fishing tuning: %w", err)
	}
	return ParseFishingTuning(data)
}

// ParseFishingTuning 在默认值基础上解析 YAML 数据
func ParseFishingTuning(data []byte) (*FishingTuning, error) {
	tuning := DefaultFishingTuning()
	if err := yaml.Unmarshal(data, tuning); err != nil {
		return nil, fmt.Errorf("failed to parse fishing tuning: %w", err)
	}

	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fishing tuning: %w", err)
	}

	return tuning, nil
}

// Validate 验证调参有效性
func (t *FishingTuning) Validate() error {
	if t.FrameWidth <= 0 {
		return fmt.Errorf("frameWidth must be > 0, got %.1f", t.FrameWidth)
	}
	if t.BarWidth <= 0 || t.BarWidth > t.FrameWidth {
		return fmt.Errorf("barWidth must be in (0, frameWidth], got %.1f", t.BarWidth)
	}
	if t.FishWidth <= 0 || t.FishWidth > t.FrameWidth {
		return fmt.Errorf("fishWidth must be in (0, frameWidth], got %.1f", t.FishWidth)
	}
	if t.BiteBaseWaitMs < 0 || t.BiteRandomWaitMs < 0 || t.StrikeWindowMs <= 0 {
		return fmt.Errorf("bite timings invalid: base=%.0f random=%.0f strike=%.0f",
			t.BiteBaseWaitMs, t.BiteRandomWaitMs, t.StrikeWindowMs)
	}
	if t.BarAcceleration <= 0 || t.BarAcceleration > 1 {
		return fmt.Errorf("barAcceleration must be in (0, 1], got %.3f", t.BarAcceleration)
	}
	if t.FishAcceleration <= 0 || t.FishAcceleration > 1 {
		return fmt.Errorf("fishAcceleration must be in (0, 1], got %.3f", t.FishAcceleration)
	}
	if t.FishRandomFactorMin > t.FishRandomFactorMax {
		return fmt.Errorf("fish random factor range invalid: min(%.2f) > max(%.2f)",
			t.FishRandomFactorMin, t.FishRandomFactorMax)
	}
	if t.FishMoveIntervalMin <= 0 || t.FishMoveIntervalMin > t.FishMoveIntervalMax {
		return fmt.Errorf("fish move interval invalid: min(%.2f) max(%.2f)",
			t.FishMoveIntervalMin, t.FishMoveIntervalMax)
	}
	if t.DirectionFlipChance < 0 || t.DirectionFlipChance > 1 {
		return fmt.Errorf("directionFlipChance must be in [0, 1], got %.2f", t.DirectionFlipChance)
	}
	if t.CatchProgressIncreaseRate <= 0 || t.CatchProgressDecreaseRate <= 0 {
		return fmt.Errorf("progress rates must be > 0")
	}
	if t.InitialProgressRatio <= 0 || t.InitialProgressRatio >= 1 {
		return fmt.Errorf("initialProgressRatio must be in (0, 1), got %.2f", t.InitialProgressRatio)
	}
	if t.FailAnimationSeconds < 0 {
		return fmt.Errorf("failAnimationSeconds must be >= 0")
	}
	return nil
}
