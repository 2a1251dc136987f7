package world

import "errors"

var (
	// ErrInvalidPlacement – попытка поставить воздух или незарегистрированный блок
	ErrInvalidPlacement = errors.New("invalid block placement")
	// ErrNotFound – в клетке нет блока; для удаления это no-op
	ErrNotFound = errors.New("block not found")
)
