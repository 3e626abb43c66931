package game

import (
	"sort"
	"time"
)

// TimerHandle 延迟回调句柄
//
// 零值表示"没有计时器"。Generation 记录调度时的会话代数，
// 回调方可以据此判断回调是否已过期。
type TimerHandle struct {
	id         uint64
	Generation uint64
}

// Active 句柄是否指向一个已调度的计时器
func (h TimerHandle) Active() bool {
	return h.id != 0
}

type scheduledEvent struct {
	id         uint64
	generation uint64
	dueAt      float64
	fn         func()
}

// Scheduler 由帧驱动的延迟回调调度器
//
// 宿主每帧调用 Advance(dt) 推进时钟，到期的回调在 Advance 内按到期顺序执行，
// 与 FishingManager.Update 分开调用。回调只在单线程内执行，不需要加锁。
//
// 取消后的回调保证不会再执行；回调内部再取消其他计时器同样生效。
type Scheduler struct {
	now    float64
	nextID uint64
	events map[uint64]*scheduledEvent
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{
		nextID: 1,
		events: make(map[uint64]*scheduledEvent),
	}
}

// Now 返回调度器时钟（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// After 在 delay 之后执行 fn
//
// generation 是调用方的会话代数，随句柄返回，供回调方校验。
func (s *Scheduler) After(delay time.Duration, generation uint64, fn func()) TimerHandle {
	if delay < 0 {
		delay = 0
	}
	id := s.nextID
	s.nextID++
	s.events[id] = &scheduledEvent{
		id:         id,
		generation: generation,
		dueAt:      s.now + delay.Seconds(),
		fn:         fn,
	}
	return TimerHandle{id: id, Generation: generation}
}

// Cancel 取消计时器，返回是否确实取消了一个待执行的回调
func (s *Scheduler) Cancel(h TimerHandle) bool {
	if !h.Active() {
		return false
	}
	if _, ok := s.events[h.id]; !ok {
		return false
	}
	delete(s.events, h.id)
	return true
}

// Pending 返回待执行回调数量
func (s *Scheduler) Pending() int {
	return len(s.events)
}

// Advance 推进时钟并执行所有到期回调
//
// 回调中新调度的、已经到期的事件留到下一次 Advance 执行，避免单帧内无限循环。
func (s *Scheduler) Advance(dt float64) {
	if dt > 0 {
		s.now += dt
	}

	due := make([]*scheduledEvent, 0)
	for _, ev := range s.events {
		if ev.dueAt <= s.now {
			due = append(due, ev)
		}
	}
	if len(due) == 0 {
		return
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].dueAt != due[j].dueAt {
			return due[i].dueAt < due[j].dueAt
		}
		return due[i].id < due[j].id
	})

	for _, ev := range due {
		// 前面的回调可能已经取消了它
		if _, ok := s.events[ev.id]; !ok {
			continue
		}
		delete(s.events, ev.id)
		ev.fn()
	}
}
