package core

// Size describes the pixel dimensions of a rendered view.
type Size struct {
	W int
	H int
}
