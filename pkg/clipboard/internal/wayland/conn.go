//go:build linux

package wayland

import (
	"errors"
	"syscall"
)

const headerSize = 8

// maxFds is how many descriptors one recvmsg can carry.
const maxFds = 8

var errClosed = errors.New("wayland: connection closed")

// event is one decoded server message. fd is -1 unless the compositor passed
// a descriptor with it.
type event struct {
	object uint32
	opcode uint16
	body   []byte
	fd     int
}

func (e event) closeFd() {
	if e.fd >= 0 {
		syscall.Close(e.fd) //nolint:errcheck
	}
}

type conn struct {
	fd      int
	pending []byte
	fds     []int
}

func dial(path string) (*conn, error) {
	fd, err := syscall.Socket(syscall.AF_UNIX, syscall.SOCK_STREAM|syscall.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	if err := syscall.Connect(fd, &syscall.SockaddrUnix{Name: path}); err != nil {
		syscall.Close(fd) //nolint:errcheck
		return nil, err
	}
	return &conn{fd: fd}, nil
}

func (c *conn) Close() error {
	for _, fd := range c.fds {
		syscall.Close(fd) //nolint:errcheck
	}
	c.fds = nil
	return syscall.Close(c.fd)
}

// send writes one request to object.
func (c *conn) send(object uint32, opcode uint16, body args) error {
	size := headerSize + len(body)
	msg := make([]byte, 0, size)
	msg = order.AppendUint32(msg, object)
	msg = order.AppendUint32(msg, uint32(size)<<16|uint32(opcode))
	msg = append(msg, body...)
	_, err := syscall.Write(c.fd, msg)
	return err
}

// next blocks until a whole event is buffered.
func (c *conn) next() (event, error) {
	for {
		if ev, ok := c.take(); ok {
			return ev, nil
		}
		if err := c.fill(); err != nil {
			return event{fd: -1}, err
		}
	}
}

func (c *conn) take() (event, bool) {
	if len(c.pending) < headerSize {
		return event{}, false
	}
	word := order.Uint32(c.pending[4:])
	size := int(word >> 16)
	if size < headerSize || len(c.pending) < size {
		return event{}, false
	}

	ev := event{
		object: order.Uint32(c.pending),
		opcode: uint16(word),
		body:   append([]byte(nil), c.pending[headerSize:size]...),
		fd:     -1,
	}
	c.pending = c.pending[size:]
	if len(c.fds) > 0 {
		ev.fd, c.fds = c.fds[0], c.fds[1:]
	}
	return ev, true
}

func (c *conn) fill() error {
	buf := make([]byte, 4096)
	oob := make([]byte, syscall.CmsgSpace(4*maxFds))
	n, oobn, _, _, err := syscall.Recvmsg(c.fd, buf, oob, 0)
	if err != nil {
		return err
	}
	if n == 0 {
		return errClosed
	}
	c.pending = append(c.pending, buf[:n]...)

	if oobn == 0 {
		return nil
	}
	msgs, err := syscall.ParseSocketControlMessage(oob[:oobn])
	if err != nil {
		return nil
	}
	for i := range msgs {
		if fds, err := syscall.ParseUnixRights(&msgs[i]); err == nil {
			c.fds = append(c.fds, fds...)
		}
	}
	return nil
}
