package game

import "log"

// Inventory 玩家背包
//
// 同名物品合并为一个槽位，槽位指针在数量变化时保持不变，
// 这样交易报价槽（TradingManager.SetOffer）可以用指针身份判断内容是否换了。
// 数量降到 0 的槽位被移除。
type Inventory struct {
	slots []*InventoryItem
}

// NewInventory 创建空背包
func NewInventory() *Inventory {
	return &Inventory{}
}

// Add 增加物品，返回所在槽位
func (inv *Inventory) Add(name string, quantity int) *InventoryItem {
	if name == "" || quantity <= 0 {
		return nil
	}
	if slot := inv.Slot(name); slot != nil {
		slot.Quantity += quantity
		return slot
	}
	slot := &InventoryItem{Name: name, Quantity: quantity}
	inv.slots = append(inv.slots, slot)
	return slot
}

// Remove 扣除物品，数量不足时不做任何修改并返回 false
func (inv *Inventory) Remove(name string, quantity int) bool {
	if quantity <= 0 {
		return true
	}
	for i, slot := range inv.slots {
		if slot.Name != name {
			continue
		}
		if slot.Quantity < quantity {
			return false
		}
		slot.Quantity -= quantity
		if slot.Quantity == 0 {
			inv.slots = append(inv.slots[:i], inv.slots[i+1:]...)
		}
		return true
	}
	log.Printf("[Inventory] Cannot remove %d x %q: not in inventory", quantity, name)
	return false
}

// Count 物品数量
func (inv *Inventory) Count(name string) int {
	if slot := inv.Slot(name); slot != nil {
		return slot.Quantity
	}
	return 0
}

// Slot 按名称查找槽位
func (inv *Inventory) Slot(name string) *InventoryItem {
	for _, slot := range inv.slots {
		if slot.Name == name {
			return slot
		}
	}
	return nil
}

// Slots 返回所有槽位（按加入顺序）
func (inv *Inventory) Slots() []*InventoryItem {
	return inv.slots
}

// ApplyTrade 成交后交出一个报价物品并收下商人给的物品
//
// 报价物品已经不在背包中（比如被消耗掉）时返回 false，不收下奖励。
func (inv *Inventory) ApplyTrade(given, received *InventoryItem) bool {
	if given == nil || received == nil {
		return false
	}
	if !inv.Remove(given.Name, 1) {
		return false
	}
	inv.Add(received.Name, received.Quantity)
	return true
}
