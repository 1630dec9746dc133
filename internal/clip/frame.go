// Package clip models frame-indexed streams: the minimal frame/plane
// representation blending acts on, the pull-based Clip contract, eager
// length-consistency checking, and range substitution over the external
// "maps" format.
//
// Pixel-level algorithms live outside this repository; planes exist so that
// blending, substitution, and the decision engines have a concrete sample
// model to act on.
package clip

import "fmt"

// Plane is a single component plane. Samples are float32 in the [0, 1]
// working range, row-major.
type Plane struct {
	W, H int
	Pix  []float32
}

// NewPlane allocates a zeroed plane.
func NewPlane(w, h int) *Plane {
	return &Plane{W: w, H: h, Pix: make([]float32, w*h)}
}

// Fill sets every sample to v and returns the plane.
func (p *Plane) Fill(v float32) *Plane {
	for i := range p.Pix {
		p.Pix[i] = v
	}
	return p
}

// Clone returns a deep copy.
func (p *Plane) Clone() *Plane {
	out := &Plane{W: p.W, H: p.H, Pix: make([]float32, len(p.Pix))}
	copy(out.Pix, p.Pix)
	return out
}

// SameSize reports whether two planes have identical dimensions.
func (p *Plane) SameSize(o *Plane) bool {
	return p.W == o.W && p.H == o.H
}

// Frame is one video frame: a luma plane plus optional chroma planes.
// Planes[0] is always luma; YUV frames carry three planes.
type Frame struct {
	Planes []*Plane
}

// NewGray allocates a single-plane frame.
func NewGray(w, h int) *Frame {
	return &Frame{Planes: []*Plane{NewPlane(w, h)}}
}

// NewYUV allocates a three-plane frame. Chroma planes share the luma
// geometry; subsampling is a concern of the external filter layer.
func NewYUV(w, h int) *Frame {
	return &Frame{Planes: []*Plane{NewPlane(w, h), NewPlane(w, h), NewPlane(w, h)}}
}

// Luma returns the first plane.
func (f *Frame) Luma() *Plane {
	return f.Planes[0]
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{Planes: make([]*Plane, len(f.Planes))}
	for i, p := range f.Planes {
		out.Planes[i] = p.Clone()
	}
	return out
}

// Geometry returns the luma dimensions.
func (f *Frame) Geometry() (w, h int) {
	return f.Planes[0].W, f.Planes[0].H
}

func (f *Frame) String() string {
	w, h := f.Geometry()
	return fmt.Sprintf("frame %dx%d planes=%d", w, h, len(f.Planes))
}
