package block

import "sort"

var registry = make(map[BlockID]BlockBehavior)

// Register добавляет поведение блока в регистр
func Register(id BlockID, behavior BlockBehavior) {
	registry[id] = behavior
}

// Get возвращает поведение для указанного ID
func Get(id BlockID) (BlockBehavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// IsPlaceable возвращает true для зарегистрированных твёрдых блоков
func IsPlaceable(id BlockID) bool {
	behavior, exists := registry[id]
	return exists && behavior.Solid()
}

// Name возвращает имя блока или "unknown"
func Name(id BlockID) string {
	if behavior, exists := registry[id]; exists {
		return behavior.Name()
	}
	return "unknown"
}

// Lookup ищет блок по имени палитры (STONE, BRICK, ...)
func Lookup(name string) (BlockID, bool) {
	for id, behavior := range registry {
		if behavior.Name() == name {
			return id, true
		}
	}
	return AirBlockID, false
}

// Palette возвращает ID всех твёрдых блоков в порядке возрастания
func Palette() []BlockID {
	ids := make([]BlockID, 0, len(registry))
	for id, behavior := range registry {
		if behavior.Solid() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// BlockID представляет идентификатор блока
type BlockID uint16

// Константы ID блоков
const (
	AirBlockID   BlockID = iota // 0 – отсутствие записи в мире
	StoneBlockID                // 1
	GrassBlockID                // 2
	SandBlockID                 // 3
	BrickBlockID                // 4
)

// IsBreakable возвращает true, если игрок может сломать блок
func IsBreakable(id BlockID) bool {
	behavior, exists := registry[id]
	return exists && behavior.Breakable()
}
