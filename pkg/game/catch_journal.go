package game

import (
	"fmt"
	"log"
	"slices"
	"sort"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/riverbank/pkg/config"
)

// JournalEntry 图鉴中一种鱼的记录
type JournalEntry struct {
	Name          string    `yaml:"name"`
	Tier          int       `yaml:"tier"`
	Count         int       `yaml:"count"`
	BestSize      float64   `yaml:"bestSize"`
	FirstCaughtAt time.Time `yaml:"firstCaughtAt"`
	Biomes        []string  `yaml:"biomes"` // 钓到过的生物群系（按名称排序）
}

// journalData 持久化格式
type journalData struct {
	Entries       []JournalEntry `yaml:"entries"`
	TotalCatches  int            `yaml:"totalCatches"`
	TotalEscapes  int            `yaml:"totalEscapes"`
	BaitsConsumed int            `yaml:"baitsConsumed"`
}

const (
	journalObject   = "journal"
	journalProperty = "catches"
)

// CatchJournal 钓鱼图鉴
//
// 记录每种鱼的数量、最大尺寸和首次钓获时间，通过 gdata 持久化为 YAML。
// gdataManager 为 nil 时只保存在内存中（降级模式）。
type CatchJournal struct {
	gdataManager *gdata.Manager
	entries      map[string]*JournalEntry
	totals       journalData
}

// NewCatchJournal 创建图鉴并尝试加载已保存的数据
//
// 加载失败时从空图鉴开始。
func NewCatchJournal(gdataManager *gdata.Manager) *CatchJournal {
	j := &CatchJournal{
		gdataManager: gdataManager,
		entries:      make(map[string]*JournalEntry),
	}
	if err := j.Load(); err != nil {
		log.Printf("[CatchJournal] Warning: Failed to load journal: %v (starting empty)", err)
	}
	return j
}

// Record 记录一次钓获，返回是否刷新了该鱼的尺寸纪录（首次钓获也算）
func (j *CatchJournal) Record(catch CaughtFish) bool {
	j.totals.TotalCatches++

	entry, ok := j.entries[catch.Name]
	if !ok {
		entry = &JournalEntry{
			Name:          catch.Name,
			Tier:          catch.Tier,
			FirstCaughtAt: catch.CaughtAt,
		}
		j.entries[catch.Name] = entry
	}
	entry.Count++

	if catch.Biome != "" && !slices.Contains(entry.Biomes, catch.Biome) {
		entry.Biomes = append(entry.Biomes, catch.Biome)
		sort.Strings(entry.Biomes)
	}

	if !ok || catch.Size > entry.BestSize {
		entry.BestSize = catch.Size
		log.Printf("[CatchJournal] New record for %s: %.1f cm", catch.Name, catch.Size)
		return true
	}
	return false
}

// RecordEscape 记录一次逃跑
func (j *CatchJournal) RecordEscape() {
	j.totals.TotalEscapes++
}

// RecordBaitConsumed 记录一次鱼饵消耗
func (j *CatchJournal) RecordBaitConsumed() {
	j.totals.BaitsConsumed++
}

// Entry 查询某种鱼的记录
func (j *CatchJournal) Entry(name string) (JournalEntry, bool) {
	entry, ok := j.entries[name]
	if !ok {
		return JournalEntry{}, false
	}
	return *entry, true
}

// Entries 返回所有记录：先按阶数降序，再按名称排序
func (j *CatchJournal) Entries() []JournalEntry {
	out := make([]JournalEntry, 0, len(j.entries))
	for _, e := range j.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Tier != out[b].Tier {
			return out[a].Tier > out[b].Tier
		}
		return out[a].Name < out[b].Name
	})
	return out
}

// TotalCatches 钓获总数
func (j *CatchJournal) TotalCatches() int {
	return j.totals.TotalCatches
}

// TotalEscapes 逃跑总数
func (j *CatchJournal) TotalEscapes() int {
	return j.totals.TotalEscapes
}

// BaitsConsumed 消耗鱼饵总数
func (j *CatchJournal) BaitsConsumed() int {
	return j.totals.BaitsConsumed
}

// Load 从 gdata 加载图鉴
func (j *CatchJournal) Load() error {
	j.entries = make(map[string]*JournalEntry)
	j.totals = journalData{}

	if j.gdataManager == nil {
		return nil
	}
	if !j.gdataManager.ObjectPropExists(journalObject, journalProperty) {
		return nil
	}

	data, err := j.gdataManager.LoadObjectProp(journalObject, journalProperty)
	if err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}

	var loaded journalData
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal journal: %w", err)
	}

	for i := range loaded.Entries {
		e := loaded.Entries[i]
		if e.Name == "" {
			continue
		}
		j.entries[e.Name] = &e
	}
	loaded.Entries = nil
	j.totals = loaded

	log.Printf("[CatchJournal] Loaded %d species", len(j.entries))
	return nil
}

// Save 保存图鉴到 gdata，降级模式下为空操作
func (j *CatchJournal) Save() error {
	if j.gdataManager == nil {
		return nil
	}

	out := j.totals
	out.Entries = j.Entries()

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}
	if err := j.gdataManager.SaveObjectProp(journalObject, journalProperty, data); err != nil {
		return fmt.Errorf("failed to save journal: %w", err)
	}

	log.Printf("[CatchJournal] Journal saved (%d species)", len(out.Entries))
	return nil
}

// Events 返回订阅钓鱼事件的回调，用 ChainEvents 与其他订阅者组合
func (j *CatchJournal) Events() FishingEvents {
	return FishingEvents{
		OnCatchCompleted: func(catch CaughtFish) {
			j.Record(catch)
		},
		OnFishEscaped: func(config.FishCatch) {
			j.RecordEscape()
		},
		OnBaitConsumed: func(config.BaitDefinition) {
			j.RecordBaitConsumed()
		},
	}
}
