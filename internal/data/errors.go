package data

import "errors"

var (
	// ErrRaggedRows indicates a surface row whose length differs from the grid.
	ErrRaggedRows = errors.New("data: surface row length differs from column count")

	// ErrIndexOutOfRange indicates a row, column or item index outside the array.
	ErrIndexOutOfRange = errors.New("data: index out of range")

	// ErrEmptyImage indicates a height map image without pixels.
	ErrEmptyImage = errors.New("data: height map image is empty")
)
