package utils

// WeightedPick 轮盘赌加权选择（线性扫描）
//
// 算法：
//  1. 累加所有候选权重得到 total（权重 <= 0 的候选视为 0，永远不会被选中）
//  2. 在 [0, total) 中均匀抽取 r
//  3. 按迭代顺序依次减去每个候选的权重，r 变为负数时返回该候选
//
// 没有候选或所有权重 <= 0 时返回 ok=false，不会 panic，也不会除零。
// r 恰好落在两个候选边界上的归属取决于浮点比较顺序，不做保证。
func WeightedPick[T any](rng RNG, items []T, weight func(T) float64) (picked T, ok bool) {
	total := 0.0
	for _, item := range items {
		if w := weight(item); w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return picked, false
	}

	r := rng.Float64() * total
	lastPositive := -1
	for i, item := range items {
		w := weight(item)
		if w <= 0 {
			continue
		}
		lastPositive = i
		r -= w
		if r < 0 {
			return item, true
		}
	}

	// 浮点累积误差可能让 r 在末尾仍 >= 0，此时归入最后一个有效候选
	return items[lastPositive], true
}

// UniformPick 等概率选择一个候选（交易奖励使用）
func UniformPick[T any](rng RNG, items []T) (picked T, ok bool) {
	if len(items) == 0 {
		return picked, false
	}
	return items[rng.IntN(len(items))], true
}
