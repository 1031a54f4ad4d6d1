package statsd

import "io"

// packetBuffer packs newline separated lines into datagrams of at most max
// bytes. Only the worker touches it.
type packetBuffer struct {
	out io.Writer
	max int
	buf []byte
}

func newPacketBuffer(out io.Writer, max int) *packetBuffer {
	return &packetBuffer{out: out, max: max, buf: make([]byte, 0, max+1)}
}

// add buffers line, writing out what was buffered before it if line doesn't
// fit in the same datagram. A line larger than max is sent on its own.
func (p *packetBuffer) add(line []byte) (n int, err error) {
	lastSafeLen := len(p.buf)
	p.buf = append(p.buf, line...)
	p.buf = append(p.buf, '\n')
	return p.flushIfBufferFull(lastSafeLen)
}

func (p *packetBuffer) flushIfBufferFull(lastSafeLen int) (int, error) {
	// the trailing \n is not sent
	if len(p.buf)-1 > p.max {
		return p.flush(lastSafeLen)
	}
	return 0, nil
}

// flush writes the first n buffered bytes as one datagram. n == 0 means all.
func (p *packetBuffer) flush(n int) (int, error) {
	if len(p.buf) == 0 {
		return 0, nil
	}
	if n == 0 {
		n = len(p.buf)
	}

	// Trim the last \n, StatsD does not like it.
	written, err := p.out.Write(p.buf[:n-1])

	if n < len(p.buf) {
		copy(p.buf, p.buf[n:])
	}
	p.buf = p.buf[:len(p.buf)-n]
	return written, err
}

func (p *packetBuffer) buffered() int {
	return len(p.buf)
}

/* Some of the above code has been borrowed from github.com/alexcesaro/statsd

... which carries the license:

The MIT License (MIT)

Copyright (c) 2015 Alexandre Cesaro

Permission is hereby granted, free of charge, to any person obtaining a copy of
this software and associated documentation files (the "Software"), to deal in
the Software without restriction, including without limitation the rights to
use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
the Software, and to permit persons to whom the Software is furnished to do so,
subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/
