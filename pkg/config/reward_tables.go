package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 查找失败的哨兵错误，调用方使用 errors.Is 判断
var (
	ErrUnknownBiome = errors.New("unknown biome")
	ErrUnknownBait  = errors.New("unknown bait")
	ErrUnknownHook  = errors.New("unknown hook")
)

// FishCatch 生物群系鱼表中的一条记录
//
// Chance 是该生物群系内的基础权重；抽取时会乘以鱼饵的 FishChanceBonus。
// Power 决定小游戏中鱼标的移动速度。
type FishCatch struct {
	Name    string  `yaml:"name"`
	Chance  float64 `yaml:"chance"`
	Power   float64 `yaml:"power"`
	MinSize float64 `yaml:"minSize"`
	MaxSize float64 `yaml:"maxSize"`
	Tier    int     `yaml:"tier"`
}

// BaitDefinition 鱼饵定义
type BaitDefinition struct {
	Name string `yaml:"name"`
	Tier int    `yaml:"tier"`
	// Chance 挖鱼饵时的抽取权重
	Chance float64 `yaml:"chance"`
	// WaitTimeReduction 缩短咬钩等待随机部分的毫秒数（可选）
	WaitTimeReduction float64 `yaml:"waitTimeReduction,omitempty"`
	// FishChanceBonus 稀疏的鱼名 -> 权重乘数映射，未列出的鱼乘数为 1
	FishChanceBonus map[string]float64 `yaml:"fishChanceBonus,omitempty"`
}

// BonusFor 返回该鱼饵对指定鱼的权重乘数（未配置时为 1）
func (b *BaitDefinition) BonusFor(fishName string) float64 {
	if b == nil {
		return 1
	}
	if bonus, ok := b.FishChanceBonus[fishName]; ok {
		return bonus
	}
	return 1
}

// HookDefinition 鱼钩定义，所有修正值都是乘数
type HookDefinition struct {
	Name                   string  `yaml:"name"`
	Tier                   int     `yaml:"tier"`
	FishPowerModifier      float64 `yaml:"fishPowerModifier"`
	PlayerBarWidthModifier float64 `yaml:"playerBarWidthModifier"`
	PlayerBarSpeedModifier float64 `yaml:"playerBarSpeedModifier"`
}

// TradeItem 非钓鱼类交易物品（贝壳、硬币等）
type TradeItem struct {
	Name string `yaml:"name"`
	Tier int    `yaml:"tier"`
}

// TradingRules 生物群系内商人的交易规则
type TradingRules struct {
	// PlayerCanOffer 玩家可以放入报价槽的物品名
	PlayerCanOffer []string `yaml:"playerCanOffer"`
	// NPCWillGive 商人可能给出的物品名
	NPCWillGive []string `yaml:"npcWillGive"`
}

// Biome 生物群系：鱼表 + 交易规则
type Biome struct {
	Name    string       `yaml:"name"`
	Fish    []FishCatch  `yaml:"fish"`
	Trading TradingRules `yaml:"trading"`
}

// RewardTablesConfig 奖励表配置
//
// 配置文件位置: data/fishing/reward_tables.yaml
type RewardTablesConfig struct {
	Baits  []BaitDefinition `yaml:"baits"`
	Hooks  []HookDefinition `yaml:"hooks"`
	Items  []TradeItem      `yaml:"items"`
	Biomes []Biome          `yaml:"biomes"`
}

// LoadRewardTables 从 YAML 文件加载奖励表
//
// 参数:
//   - path: 配置文件路径（如 "data/fishing/reward_tables.yaml"）
//
// 返回:
//   - *RewardTablesConfig: 校验通过的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadRewardTables(path string) (*RewardTablesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reward tables: %w", err)
	}
	return ParseRewardTables(data)
}

// ParseRewardTables 解析并校验 YAML 数据（用于嵌入资源）
func ParseRewardTables(data []byte) (*RewardTablesConfig, error) {
	var cfg RewardTablesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse reward tables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reward tables: %w", err)
	}

	return &cfg, nil
}

// Validate 校验奖励表并规范化可选字段
//
// 检查项：
//   - 名称非空且在各自类别中唯一
//   - 权重、力量、尺寸、阶数非负，MinSize <= MaxSize
//   - 鱼钩修正值为 0 时视为 1（未配置）
//   - 交易列表引用的物品都能解析出阶数
func (c *RewardTablesConfig) Validate() error {
	baitNames := make(map[string]bool)
	for i := range c.Baits {
		b := &c.Baits[i]
		if b.Name == "" {
			return fmt.Errorf("bait #%d has empty name", i)
		}
		if baitNames[b.Name] {
			return fmt.Errorf("duplicate bait %q", b.Name)
		}
		baitNames[b.Name] = true
		if b.Tier < 0 || b.Chance < 0 || b.WaitTimeReduction < 0 {
			return fmt.Errorf("bait %q: tier, chance and waitTimeReduction must be >= 0", b.Name)
		}
		for fish, bonus := range b.FishChanceBonus {
			if bonus < 0 {
				return fmt.Errorf("bait %q: fishChanceBonus for %q must be >= 0, got %.2f", b.Name, fish, bonus)
			}
		}
	}

	hookNames := make(map[string]bool)
	for i := range c.Hooks {
		h := &c.Hooks[i]
		if h.Name == "" {
			return fmt.Errorf("hook #%d has empty name", i)
		}
		if hookNames[h.Name] {
			return fmt.Errorf("duplicate hook %q", h.Name)
		}
		hookNames[h.Name] = true
		if h.Tier < 0 {
			return fmt.Errorf("hook %q: tier must be >= 0", h.Name)
		}
		for _, m := range []*float64{&h.FishPowerModifier, &h.PlayerBarWidthModifier, &h.PlayerBarSpeedModifier} {
			if *m < 0 {
				return fmt.Errorf("hook %q: modifiers must be >= 0", h.Name)
			}
			if *m == 0 {
				*m = 1
			}
		}
	}

	for i, item := range c.Items {
		if item.Name == "" {
			return fmt.Errorf("item #%d has empty name", i)
		}
		if item.Tier < 0 {
			return fmt.Errorf("item %q: tier must be >= 0", item.Name)
		}
	}

	biomeNames := make(map[string]bool)
	for i := range c.Biomes {
		biome := &c.Biomes[i]
		if biome.Name == "" {
			return fmt.Errorf("biome #%d has empty name", i)
		}
		if biomeNames[biome.Name] {
			return fmt.Errorf("duplicate biome %q", biome.Name)
		}
		biomeNames[biome.Name] = true

		fishNames := make(map[string]bool)
		for _, fish := range biome.Fish {
			if fish.Name == "" {
				return fmt.Errorf("biome %q: fish with empty name", biome.Name)
			}
			if fishNames[fish.Name] {
				return fmt.Errorf("biome %q: duplicate fish %q", biome.Name, fish.Name)
			}
			fishNames[fish.Name] = true
			if fish.Chance < 0 || fish.Power < 0 || fish.Tier < 0 {
				return fmt.Errorf("biome %q: fish %q chance, power and tier must be >= 0", biome.Name, fish.Name)
			}
			if fish.MinSize < 0 || fish.MinSize > fish.MaxSize {
				return fmt.Errorf("biome %q: fish %q size range invalid: min(%.1f) > max(%.1f)",
					biome.Name, fish.Name, fish.MinSize, fish.MaxSize)
			}
		}
	}

	// 交易引用在所有类别加载完成后再检查
	for _, biome := range c.Biomes {
		for _, list := range [][]string{biome.Trading.PlayerCanOffer, biome.Trading.NPCWillGive} {
			for _, name := range list {
				if _, ok := c.ItemTier(name); !ok {
					return fmt.Errorf("biome %q: trading references unknown item %s",
						biome.Name, describeUnknown(name, c.itemNames()))
				}
			}
		}
	}

	return nil
}

// Bait 按名称查找鱼饵
func (c *RewardTablesConfig) Bait(name string) (*BaitDefinition, error) {
	for i := range c.Baits {
		if c.Baits[i].Name == name {
			return &c.Baits[i], nil
		}
	}
	names := make([]string, 0, len(c.Baits))
	for _, b := range c.Baits {
		names = append(names, b.Name)
	}
	return nil, fmt.Errorf("%w %s", ErrUnknownBait, describeUnknown(name, names))
}

// Hook 按名称查找鱼钩
func (c *RewardTablesConfig) Hook(name string) (*HookDefinition, error) {
	for i := range c.Hooks {
		if c.Hooks[i].Name == name {
			return &c.Hooks[i], nil
		}
	}
	names := make([]string, 0, len(c.Hooks))
	for _, h := range c.Hooks {
		names = append(names, h.Name)
	}
	return nil, fmt.Errorf("%w %s", ErrUnknownHook, describeUnknown(name, names))
}

// Biome 按名称查找生物群系
func (c *RewardTablesConfig) Biome(name string) (*Biome, error) {
	for i := range c.Biomes {
		if c.Biomes[i].Name == name {
			return &c.Biomes[i], nil
		}
	}
	return nil, fmt.Errorf("%w %s", ErrUnknownBiome, describeUnknown(name, c.BiomeNames()))
}

// BiomeNames 返回所有生物群系名称（配置顺序）
func (c *RewardTablesConfig) BiomeNames() []string {
	names := make([]string, 0, len(c.Biomes))
	for _, b := range c.Biomes {
		names = append(names, b.Name)
	}
	return names
}

// ItemTier 查找任意可交易物品的阶数
//
// 查找顺序：鱼（所有生物群系）-> 鱼饵 -> 鱼钩 -> 普通物品。
// 同名的鱼在不同生物群系中阶数应一致，取第一个匹配。
func (c *RewardTablesConfig) ItemTier(name string) (int, bool) {
	for _, biome := range c.Biomes {
		for _, fish := range biome.Fish {
			if fish.Name == name {
				return fish.Tier, true
			}
		}
	}
	for _, b := range c.Baits {
		if b.Name == name {
			return b.Tier, true
		}
	}
	for _, h := range c.Hooks {
		if h.Name == name {
			return h.Tier, true
		}
	}
	for _, item := range c.Items {
		if item.Name == name {
			return item.Tier, true
		}
	}
	return 0, false
}

func (c *RewardTablesConfig) itemNames() []string {
	var names []string
	for _, biome := range c.Biomes {
		for _, fish := range biome.Fish {
			names = append(names, fish.Name)
		}
	}
	for _, b := range c.Baits {
		names = append(names, b.Name)
	}
	for _, h := range c.Hooks {
		names = append(names, h.Name)
	}
	for _, item := range c.Items {
		names = append(names, item.Name)
	}
	return names
}
