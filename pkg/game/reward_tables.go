package game

import (
	"log"

	"github.com/gonewx/riverbank/pkg/config"
	"github.com/gonewx/riverbank/pkg/utils"
)

// RewardTables 奖励表查询接口
//
// 包装已校验的 config.RewardTablesConfig，提供鱼/鱼饵的加权抽取。
// 除了推进随机源之外没有副作用，可以随时调用。
type RewardTables struct {
	cfg *config.RewardTablesConfig
	rng utils.RNG
}

// NewRewardTables 创建奖励表
//
// 参数：
//   - cfg: 已通过 Validate() 的奖励表配置
//   - rng: 随机源（测试中使用 utils.NewSeededRNG 保证可重复）
func NewRewardTables(cfg *config.RewardTablesConfig, rng utils.RNG) *RewardTables {
	return &RewardTables{
		cfg: cfg,
		rng: rng,
	}
}

// Config 返回底层配置
func (rt *RewardTables) Config() *config.RewardTablesConfig {
	return rt.cfg
}

// GetFishData 返回所有生物群系的鱼表副本（生物群系名 -> 鱼列表）
func (rt *RewardTables) GetFishData() map[string][]config.FishCatch {
	data := make(map[string][]config.FishCatch, len(rt.cfg.Biomes))
	for _, biome := range rt.cfg.Biomes {
		fish := make([]config.FishCatch, len(biome.Fish))
		copy(fish, biome.Fish)
		data[biome.Name] = fish
	}
	return data
}

// EffectiveFishChance 计算鱼的实际抽取权重
//
// effectiveWeight = baseChance × bait.FishChanceBonus[name]
// 鱼饵为 nil 或未配置该鱼的加成时乘数为 1。
func EffectiveFishChance(fish config.FishCatch, bait *config.BaitDefinition) float64 {
	return fish.Chance * bait.BonusFor(fish.Name)
}

// GetRandomCatch 从生物群系鱼表中加权抽取一条鱼
//
// 返回的 FishCatch 是副本，Chance 字段为应用鱼饵加成后的权重。
// 生物群系不存在、鱼表为空或全部权重为 0 时返回 ok=false。
func (rt *RewardTables) GetRandomCatch(biomeName string, bait *config.BaitDefinition) (config.FishCatch, bool) {
	biome, err := rt.cfg.Biome(biomeName)
	if err != nil {
		log.Printf("[RewardTables] Cannot draw fish: %v", err)
		return config.FishCatch{}, false
	}

	fish, ok := utils.WeightedPick(rt.rng, biome.Fish, func(f config.FishCatch) float64 {
		return EffectiveFishChance(f, bait)
	})
	if !ok {
		return config.FishCatch{}, false
	}

	fish.Chance = EffectiveFishChance(fish, bait)
	return fish, true
}

// GetRandomBait 按鱼饵 Chance 权重抽取一个鱼饵
func (rt *RewardTables) GetRandomBait() (config.BaitDefinition, bool) {
	return utils.WeightedPick(rt.rng, rt.cfg.Baits, func(b config.BaitDefinition) float64 {
		return b.Chance
	})
}

// ItemTier 查询任意物品的阶数
func (rt *RewardTables) ItemTier(name string) (int, bool) {
	return rt.cfg.ItemTier(name)
}
