package block

// BlockBehavior определяет поведение блока
type BlockBehavior interface {
	ID() BlockID
	Name() string
	// Solid – занимает ли блок клетку (воздух не занимает)
	Solid() bool
	// Breakable – может ли игрок сломать блок
	Breakable() bool
}

// basicBehavior – статичный блок палитры без состояния
type basicBehavior struct {
	id        BlockID
	name      string
	solid     bool
	breakable bool
}

func (b *basicBehavior) ID() BlockID     { return b.id }
func (b *basicBehavior) Name() string    { return b.name }
func (b *basicBehavior) Solid() bool     { return b.solid }
func (b *basicBehavior) Breakable() bool { return b.breakable }

// Регистрируем палитру при импорте пакета
func init() {
	Register(AirBlockID, &basicBehavior{id: AirBlockID, name: "AIR"})
	// Камень образует пол и стены мира, поэтому неразрушаем
	Register(StoneBlockID, &basicBehavior{id: StoneBlockID, name: "STONE", solid: true})
	Register(GrassBlockID, &basicBehavior{id: GrassBlockID, name: "GRASS", solid: true, breakable: true})
	Register(SandBlockID, &basicBehavior{id: SandBlockID, name: "SAND", solid: true, breakable: true})
	Register(BrickBlockID, &basicBehavior{id: BrickBlockID, name: "BRICK", solid: true, breakable: true})
}
