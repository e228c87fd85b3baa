//go:build linux

// Package wayland is a minimal wlr-data-control client: just enough of the
// wire protocol to own the clipboard selection and answer paste requests.
package wayland

import (
	"encoding/binary"
	"errors"
)

var order = binary.LittleEndian

var errShort = errors.New("wayland: truncated argument")

// args builds a request body.
type args []byte

func (a args) uint(v uint32) args {
	return order.AppendUint32(a, v)
}

// str appends a wire string: length including the NUL, bytes, NUL, padding
// to a 4-byte boundary.
func (a args) str(s string) args {
	n := len(s) + 1
	a = order.AppendUint32(a, uint32(n))
	a = append(a, s...)
	for pad := align4(n) - len(s); pad > 0; pad-- {
		a = append(a, 0)
	}
	return a
}

func align4(n int) int {
	return (n + 3) &^ 3
}

// reader walks an event body.
type reader struct {
	body []byte
}

func (r *reader) uint() (uint32, error) {
	if len(r.body) < 4 {
		return 0, errShort
	}
	v := order.Uint32(r.body)
	r.body = r.body[4:]
	return v, nil
}

func (r *reader) str() (string, error) {
	n, err := r.uint()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	padded := align4(int(n))
	if len(r.body) < padded {
		return "", errShort
	}
	s := string(r.body[:n-1])
	r.body = r.body[padded:]
	return s, nil
}
