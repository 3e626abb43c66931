package game

import (
	"math"

	"github.com/gonewx/riverbank/pkg/config"
	"github.com/gonewx/riverbank/pkg/utils"
)

// MinigameOutcome 单帧收线物理的结果
type MinigameOutcome int

const (
	// OutcomeContinue 小游戏继续
	OutcomeContinue MinigameOutcome = iota
	// OutcomeCaught 进度到达上限
	OutcomeCaught
	// OutcomeEscaped 进度降到 0
	OutcomeEscaped
)

// Minigame 收线小游戏的逐帧物理
//
// 框体是一维区间 [-FrameWidth/2, FrameWidth/2]：
//   - 收线条由玩家方向键控制，速度以帧率无关的方式趋近目标速度，到边缘被夹住
//   - 鱼标自主运动，每隔 0.5~2 秒重新随机目标速度，到边缘反弹
//   - 两者重叠时进度增加，不重叠时以更快的速率减少
type Minigame struct {
	tuning *config.FishingTuning
	rng    utils.RNG
}

// NewMinigame 创建小游戏物理解算器
func NewMinigame(tuning *config.FishingTuning, rng utils.RNG) *Minigame {
	return &Minigame{
		tuning: tuning,
		rng:    rng,
	}
}

// Begin 鱼上钩时初始化小游戏状态
//
// 收线条和鱼标都从框体中心开始，进度为 FrameWidth × InitialProgressRatio。
// 鱼钩的收线条宽度修正在此应用一次。
func (m *Minigame) Begin(s *FishingSession) {
	widthModifier := 1.0
	if s.Hook != nil {
		widthModifier = s.Hook.PlayerBarWidthModifier
	}
	s.BarWidth = math.Min(m.tuning.BarWidth*widthModifier, m.tuning.FrameWidth)
	s.BarPosition = 0
	s.BarVelocity = 0

	s.FishPosition = 0
	s.FishVelocity = 0
	s.FishTargetVelocity = 0
	s.FishMoveTimer = 0 // 第一帧立即选取目标速度
	s.FishDirection = 1
	if m.rng.Float64() < 0.5 {
		s.FishDirection = -1
	}

	s.Progress = m.tuning.FrameWidth * m.tuning.InitialProgressRatio
}

// Step 推进一帧物理
func (m *Minigame) Step(s *FishingSession, dt float64) MinigameOutcome {
	if s.CurrentFish == nil || dt <= 0 {
		return OutcomeContinue
	}

	m.stepBar(s, dt)
	m.stepFish(s, dt)

	if m.Overlapping(s) {
		s.Progress += m.tuning.CatchProgressIncreaseRate * dt
	} else {
		s.Progress -= m.tuning.CatchProgressDecreaseRate * dt
	}
	s.Progress = utils.Clamp(s.Progress, 0, m.tuning.FrameWidth)

	if s.Progress >= m.tuning.FrameWidth {
		return OutcomeCaught
	}
	if s.Progress <= 0 {
		return OutcomeEscaped
	}
	return OutcomeContinue
}

func (m *Minigame) stepBar(s *FishingSession, dt float64) {
	speedModifier := 1.0
	if s.Hook != nil {
		speedModifier = s.Hook.PlayerBarSpeedModifier
	}
	target := float64(s.BarDirection) * m.tuning.BarMaxSpeed * speedModifier
	s.BarVelocity = utils.Approach(s.BarVelocity, target, m.tuning.BarAcceleration, dt)
	s.BarPosition += s.BarVelocity * dt

	limit := m.BarTravelLimit(s)
	if s.BarPosition > limit {
		s.BarPosition = limit
		if s.BarVelocity > 0 {
			s.BarVelocity = 0
		}
	} else if s.BarPosition < -limit {
		s.BarPosition = -limit
		if s.BarVelocity < 0 {
			s.BarVelocity = 0
		}
	}
}

func (m *Minigame) stepFish(s *FishingSession, dt float64) {
	s.FishMoveTimer -= dt
	if s.FishMoveTimer <= 0 {
		m.retargetFish(s)
	}

	s.FishVelocity = utils.Approach(s.FishVelocity, s.FishTargetVelocity, m.tuning.FishAcceleration, dt)
	s.FishPosition += s.FishVelocity * dt

	// 到边缘反弹：速度和目标速度同时反向
	limit := m.FishTravelLimit()
	if s.FishPosition >= limit {
		s.FishPosition = limit
		s.FishVelocity = -math.Abs(s.FishVelocity)
		s.FishTargetVelocity = -math.Abs(s.FishTargetVelocity)
		s.FishDirection = -1
	} else if s.FishPosition <= -limit {
		s.FishPosition = -limit
		s.FishVelocity = math.Abs(s.FishVelocity)
		s.FishTargetVelocity = math.Abs(s.FishTargetVelocity)
		s.FishDirection = 1
	}
}

// retargetFish 计时器到期：可能掉头，并重新随机速度和下一次计时
func (m *Minigame) retargetFish(s *FishingSession) {
	if m.rng.Float64() < m.tuning.DirectionFlipChance {
		s.FishDirection = -s.FishDirection
	}
	if s.FishDirection == 0 {
		s.FishDirection = 1
	}

	randomFactor := utils.RandRange(m.rng, m.tuning.FishRandomFactorMin, m.tuning.FishRandomFactorMax)
	speed := FishSpeedScale(s.CurrentFish.Power, randomFactor, m.tuning.FishSpeedFactor)
	s.FishTargetVelocity = float64(s.FishDirection) * speed
	s.FishMoveTimer = utils.RandRange(m.rng, m.tuning.FishMoveIntervalMin, m.tuning.FishMoveIntervalMax)
}

// FishSpeedScale 鱼标速度 = power × randomFactor × speedFactor
func FishSpeedScale(power, randomFactor, speedFactor float64) float64 {
	return power * randomFactor * speedFactor
}

// BarTravelLimit 收线条中心可到达的最大偏移
func (m *Minigame) BarTravelLimit(s *FishingSession) float64 {
	return math.Max(0, m.tuning.FrameWidth/2-s.BarWidth/2)
}

// FishTravelLimit 鱼标中心可到达的最大偏移
func (m *Minigame) FishTravelLimit() float64 {
	return math.Max(0, m.tuning.FrameWidth/2-m.tuning.FishWidth/2)
}

// BarInterval 收线条的左右边界
func (m *Minigame) BarInterval(s *FishingSession) (left, right float64) {
	return s.BarPosition - s.BarWidth/2, s.BarPosition + s.BarWidth/2
}

// FishInterval 鱼标的左右边界
func (m *Minigame) FishInterval(s *FishingSession) (left, right float64) {
	return s.FishPosition - m.tuning.FishWidth/2, s.FishPosition + m.tuning.FishWidth/2
}

// Overlapping 一维区间重叠判定：barLeft < fishRight && barRight > fishLeft
func (m *Minigame) Overlapping(s *FishingSession) bool {
	barLeft, barRight := m.BarInterval(s)
	fishLeft, fishRight := m.FishInterval(s)
	return barLeft < fishRight && barRight > fishLeft
}
