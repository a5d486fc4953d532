package ikh

import "unicode/utf8"

// writer is the hash.Hash form of Hasher.Sum. Bytes of a rune
// split across Write calls are held back until the rune is
// complete.
type writer struct {
	norm    *normalizer
	state   State
	index   int
	pending []byte
	buf     []rune
}

func newWriter(strip bool) *writer {
	return &writer{norm: newNormalizer(strip)}
}

// Write never fails.
func (w *writer) Write(p []byte) (int, error) {
	w.pending = append(w.pending, p...)

	data := w.pending
	for len(data) > 0 && utf8.FullRune(data) {
		r, size := utf8.DecodeRune(data)
		w.absorbRune(&w.state, &w.index, r)
		data = data[size:]
	}

	w.pending = append(w.pending[:0], data...)

	return len(p), nil
}

func (w *writer) absorbRune(st *State, index *int, r rune) {
	w.buf = w.norm.appendRune(w.buf[:0], r)
	for _, nr := range w.buf {
		st.absorb(ComputeStep(nr, *index))
		*index++
	}
}

// Sum appends the digest of everything written so far. A
// trailing incomplete rune is decoded the way ranging over a
// string would, without consuming it.
func (w *writer) Sum(b []byte) []byte {
	st := w.state
	index := w.index

	data := w.pending
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		w.absorbRune(&st, &index, r)
		data = data[size:]
	}

	return append(b, st[:]...)
}

func (w *writer) Reset() {
	w.state = State{}
	w.index = 0
	w.pending = w.pending[:0]
}

func (w *writer) Size() int {
	return StateSize
}

func (w *writer) BlockSize() int {
	return 1
}
