package utils

import "math"

// 缓动与插值函数
//
// 钓鱼小游戏的所有运动都基于每帧 deltaTime 积分，
// 这里集中提供与帧率无关的插值工具。

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// FrameLerpFactor 将"每 60FPS 帧靠近 accel 比例"换算为任意 deltaTime 下的插值系数
//
// 公式：1 - (1-accel)^(dt·60)
//
// 这样无论实际帧率是多少，速度趋近目标的曲线都一致：
// 两帧 dt=1/120 的效果与一帧 dt=1/60 完全相同。
func FrameLerpFactor(accel, dt float64) float64 {
	if accel <= 0 || dt <= 0 {
		return 0
	}
	if accel >= 1 {
		return 1
	}
	return 1 - math.Pow(1-accel, dt*60)
}

// Approach 让 current 以帧率无关的方式趋近 target
func Approach(current, target, accel, dt float64) float64 {
	return Lerp(current, target, FrameLerpFactor(accel, dt))
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 特点：开始慢，结束较快（逃跑的鱼淡出）
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}
