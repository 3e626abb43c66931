package game

import (
	"log"
	"slices"

	"github.com/gonewx/riverbank/pkg/utils"
)

// InventoryItem 背包中的一格物品
//
// 物品槽由外部 UI 持有；TradingManager 通过指针身份判断报价槽内容是否变化。
type InventoryItem struct {
	Name     string
	Quantity int
}

// TradingManager 商人交易解算
//
// 规则：
//   - 报价物品必须在当前生物群系的 PlayerCanOffer 列表中
//   - 候选奖励 = NPCWillGive 中阶数 <= 报价阶数 + 1 的物品
//   - 在候选中等概率选择；没有候选时商人报价为空（合法结果，不是错误）
//
// 与钓鱼会话无关，每次报价槽内容变化时重新计算。
type TradingManager struct {
	tables *RewardTables
	rng    utils.RNG
	biome  string

	playerOffer *InventoryItem
	npcOffer    *InventoryItem
	observed    bool
}

// NewTradingManager 创建交易管理器
func NewTradingManager(tables *RewardTables, rng utils.RNG, biome string) *TradingManager {
	return &TradingManager{
		tables: tables,
		rng:    rng,
		biome:  biome,
	}
}

// Biome 当前生物群系
func (tm *TradingManager) Biome() string {
	return tm.biome
}

// SetBiome 切换生物群系并重新计算商人报价
func (tm *TradingManager) SetBiome(name string) {
	tm.biome = name
	tm.recompute()
}

// SetOffer 通知报价槽当前内容
//
// 只有指针与上次不同才重新计算（身份比较，不做深比较），
// 因此每帧调用也不会让商人报价反复变化。
func (tm *TradingManager) SetOffer(item *InventoryItem) {
	if tm.observed && item == tm.playerOffer {
		return
	}
	tm.observed = true
	tm.playerOffer = item
	tm.recompute()
}

// PlayerOffer 当前报价槽内容
func (tm *TradingManager) PlayerOffer() *InventoryItem {
	return tm.playerOffer
}

// NPCOffer 商人当前报价，nil 表示没有报价
func (tm *TradingManager) NPCOffer() *InventoryItem {
	return tm.npcOffer
}

// EligibleRewards 返回报价物品可换取的候选奖励（按配置顺序）
//
// 物品不被当前生物群系接受或阶数未知时返回 nil。
func (tm *TradingManager) EligibleRewards(itemName string) []string {
	biome, err := tm.tables.Config().Biome(tm.biome)
	if err != nil {
		log.Printf("[TradingManager] %v", err)
		return nil
	}
	if !slices.Contains(biome.Trading.PlayerCanOffer, itemName) {
		return nil
	}
	offeredTier, ok := tm.tables.ItemTier(itemName)
	if !ok {
		log.Printf("[TradingManager] Offered item %q has no tier", itemName)
		return nil
	}

	var rewards []string
	for _, candidate := range biome.Trading.NPCWillGive {
		tier, ok := tm.tables.ItemTier(candidate)
		if !ok {
			continue
		}
		if tier <= offeredTier+1 {
			rewards = append(rewards, candidate)
		}
	}
	return rewards
}

// AcceptTrade 成交：返回玩家交出的物品和获得的物品，并清空两个槽
func (tm *TradingManager) AcceptTrade() (given, received *InventoryItem, ok bool) {
	if tm.playerOffer == nil || tm.npcOffer == nil {
		return nil, nil, false
	}
	given, received = tm.playerOffer, tm.npcOffer

	log.Printf("[TradingManager] Traded %s x%d for %s", given.Name, given.Quantity, received.Name)

	tm.playerOffer = nil
	tm.npcOffer = nil
	return given, received, true
}

func (tm *TradingManager) recompute() {
	tm.npcOffer = nil
	if tm.playerOffer == nil {
		return
	}

	rewards := tm.EligibleRewards(tm.playerOffer.Name)
	reward, ok := utils.UniformPick(tm.rng, rewards)
	if !ok {
		log.Printf("[TradingManager] No reward for %q in %s", tm.playerOffer.Name, tm.biome)
		return
	}

	tm.npcOffer = &InventoryItem{Name: reward, Quantity: 1}
}
