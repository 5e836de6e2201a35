package escpos

// Builder accumulates printer control codes interleaved with encoded text.
// It performs no validation; callers are responsible for emitting valid
// command sequences. A Builder is single-use: create a fresh one per
// document.
type Builder struct {
	buf []byte
}

// NewBuilder returns an empty command builder.
func NewBuilder() *Builder {
	return &Builder{buf: make([]byte, 0, 256)}
}

// Append appends raw command bytes.
func (b *Builder) Append(p ...byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}

// Text encodes a string one code point at a time. The target printers use
// single-byte code pages, so any code point above 0xFF is replaced with '?'.
func (b *Builder) Text(s string) *Builder {
	for _, r := range s {
		if r > 0xFF {
			b.buf = append(b.buf, '?')
			continue
		}
		b.buf = append(b.buf, byte(r))
	}
	return b
}

// TextLine encodes a string followed by a line feed.
func (b *Builder) TextLine(s string) *Builder {
	return b.Text(s).NewLine()
}

// NewLine appends a bare line feed.
func (b *Builder) NewLine() *Builder {
	b.buf = append(b.buf, lf)
	return b
}

// Bytes returns the finished byte sequence.
func (b *Builder) Bytes() []byte {
	return b.buf
}
