package bot

import (
	"container/heap"
	"time"

	"tradebot/internal/models"
)

// closeEvent отложенное закрытие позиции
//
// Категория фиксируется при открытии: выключение стратегии не
// отменяет закрытие и не меняет его распределение.
type closeEvent struct {
	due      time.Time
	position *models.Position
	category string
	seq      uint64 // порядок вставки для стабильности при равных due
}

// closeQueue очередь отложенных закрытий, упорядоченная по сроку
//
// Одна структура на весь движок вместо таймера на позицию: цикл
// движка ждёт только ближайший срок. Операции удаления нет — каждое
// запланированное закрытие обязательно исполняется, независимо от
// остановки движка или выключения стратегии.
type closeQueue struct {
	events  closeHeap
	nextSeq uint64
}

func newCloseQueue() *closeQueue {
	q := &closeQueue{}
	heap.Init(&q.events)
	return q
}

// Push планирует закрытие позиции на момент due
func (q *closeQueue) Push(due time.Time, pos *models.Position, category string) {
	q.nextSeq++
	heap.Push(&q.events, &closeEvent{
		due:      due,
		position: pos,
		category: category,
		seq:      q.nextSeq,
	})
}

// Len возвращает количество запланированных закрытий
func (q *closeQueue) Len() int {
	return q.events.Len()
}

// NextDue возвращает ближайший срок закрытия
func (q *closeQueue) NextDue() (time.Time, bool) {
	if q.events.Len() == 0 {
		return time.Time{}, false
	}
	return q.events[0].due, true
}

// PopDue извлекает все события со сроком не позже now
func (q *closeQueue) PopDue(now time.Time) []*closeEvent {
	var due []*closeEvent
	for q.events.Len() > 0 && !q.events[0].due.After(now) {
		due = append(due, heap.Pop(&q.events).(*closeEvent))
	}
	return due
}

// closeHeap min-heap по сроку закрытия
type closeHeap []*closeEvent

func (h closeHeap) Len() int { return len(h) }

func (h closeHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h closeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *closeHeap) Push(x interface{}) {
	*h = append(*h, x.(*closeEvent))
}

func (h *closeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
