package proto

import "bytes"

// Framer accumulates raw bytes from the stream and slices them into
// newline-delimited frames in arrival order. It performs no interpretation
// of frame contents; classification belongs to the session layer.
//
// The buffer is unbounded: the wire protocol carries no length prefix, so a
// peer that never sends a newline can grow it without limit.
type Framer struct {
	buf []byte
}

// Submit appends raw bytes to the accumulation buffer.
func (f *Framer) Submit(p []byte) {
	f.buf = append(f.buf, p...)
}

// TakeFrames extracts every complete frame currently buffered, in order.
// Each frame is trimmed of surrounding whitespace; frames that trim to
// nothing carry no protocol meaning and are dropped. Bytes after the last
// newline stay buffered for a later Submit.
func (f *Framer) TakeFrames() []string {
	var frames []string
	for {
		i := bytes.IndexByte(f.buf, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSpace(f.buf[:i])
		f.buf = f.buf[i+1:]
		if len(line) == 0 {
			continue
		}
		frames = append(frames, string(line))
	}
	if len(f.buf) == 0 {
		f.buf = nil
	}
	return frames
}

// Buffered reports how many bytes await a delimiter.
func (f *Framer) Buffered() int {
	return len(f.buf)
}
