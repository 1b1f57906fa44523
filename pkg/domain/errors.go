package domain

import "errors"

// ErrLayerNotFound is returned when a layer identifier cannot be found in a store.
var ErrLayerNotFound = errors.New("layer not found")

// ErrInvalidName is returned when a string is not a legal prim name.
var ErrInvalidName = errors.New("invalid prim name")

// ErrInvalidPath is returned when a string cannot be parsed as an absolute prim path.
var ErrInvalidPath = errors.New("invalid prim path")

// ErrItemExpired is returned when an operation is attempted through a scene item
// whose underlying prim has been removed from the stage.
var ErrItemExpired = errors.New("scene item expired")
