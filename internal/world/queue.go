package world

import (
	"github.com/annel0/voxel-world/internal/vec"
)

// Action – намерение, с которым элемент попал в очередь.
// При обработке любое действие сводится к пересчёту видимости клетки,
// поэтому порядок и повторы элементов не влияют на итоговое состояние.
type Action uint8

const (
	ActionCheck Action = iota // Изменение мира: пересчитать клетку
	ActionShow                // Загрузка сектора: клетка должна появиться
	ActionHide                // Выгрузка сектора: клетка должна исчезнуть
)

// String возвращает имя действия
func (a Action) String() string {
	switch a {
	case ActionCheck:
		return "check"
	case ActionShow:
		return "show"
	case ActionHide:
		return "hide"
	default:
		return "unknown"
	}
}

// QueueItem – элемент отложенной работы
type QueueItem struct {
	Action Action
	Pos    vec.Vec3
}

// PendingQueue – FIFO на кольцевом буфере
type PendingQueue struct {
	items []QueueItem
	head  int
	size  int
}

// NewPendingQueue создаёт очередь с начальной ёмкостью
func NewPendingQueue(capacity int) *PendingQueue {
	if capacity < 16 {
		capacity = 16
	}
	return &PendingQueue{items: make([]QueueItem, capacity)}
}

// Push добавляет элемент в хвост
func (q *PendingQueue) Push(item QueueItem) {
	if q.size == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.size)%len(q.items)] = item
	q.size++
}

// Pop извлекает элемент из головы
func (q *PendingQueue) Pop() (QueueItem, bool) {
	if q.size == 0 {
		return QueueItem{}, false
	}
	item := q.items[q.head]
	q.items[q.head] = QueueItem{}
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return item, true
}

// Len возвращает количество элементов
func (q *PendingQueue) Len() int {
	return q.size
}

func (q *PendingQueue) grow() {
	next := make([]QueueItem, len(q.items)*2)
	for i := 0; i < q.size; i++ {
		next[i] = q.items[(q.head+i)%len(q.items)]
	}
	q.items = next
	q.head = 0
}
