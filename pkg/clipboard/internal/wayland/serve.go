//go:build linux

package wayland

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"syscall"
)

// Object IDs are client-allocated and fixed for this short-lived session.
const (
	objDisplay uint32 = iota + 1
	objRegistry
	objGlobalsDone
	objSeat
	objManager
	objSource
	objDevice
	objClaimDone
)

const (
	ifaceSeat    = "wl_seat"
	ifaceManager = "zwlr_data_control_manager_v1"
)

// Request opcodes.
const (
	opDisplaySync        = 0
	opDisplayGetRegistry = 1
	opRegistryBind       = 0
	opManagerNewSource   = 0
	opManagerGetDevice   = 1
	opSourceOffer        = 0
	opDeviceSetSelection = 0
)

// Event opcodes.
const (
	evRegistryGlobal = 0
	evCallbackDone   = 0
	evSourceSend     = 0
	evSourceCancel   = 1
)

// ErrUnsupported means the compositor has no wlr-data-control global.
var ErrUnsupported = errors.New("wayland: compositor does not support wlr-data-control")

// Serve takes the clipboard selection and answers paste requests with the
// bytes offered for each MIME type. It returns nil once another client
// replaces the selection or the compositor hangs up.
func Serve(offers map[string][]byte) error {
	path, err := socketPath()
	if err != nil {
		return err
	}
	c, err := dial(path)
	if err != nil {
		return fmt.Errorf("wayland: connect %s: %w", path, err)
	}
	defer c.Close() //nolint:errcheck

	s := &session{conn: c, offers: offers}
	if err := s.discover(); err != nil {
		return err
	}
	if err := s.claim(); err != nil {
		return err
	}
	return s.serve()
}

func socketPath() (string, error) {
	display := os.Getenv("WAYLAND_DISPLAY")
	if display == "" {
		display = "wayland-0"
	}
	if filepath.IsAbs(display) {
		return display, nil
	}
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		return "", errors.New("wayland: XDG_RUNTIME_DIR not set")
	}
	return filepath.Join(dir, display), nil
}

type session struct {
	*conn
	offers  map[string][]byte
	seat    uint32
	manager uint32
}

// discover records the registry names of the seat and the data-control
// manager.
func (s *session) discover() error {
	if err := s.send(objDisplay, opDisplayGetRegistry, args{}.uint(objRegistry)); err != nil {
		return err
	}
	if err := s.send(objDisplay, opDisplaySync, args{}.uint(objGlobalsDone)); err != nil {
		return err
	}

	err := s.until(objGlobalsDone, func(ev event) {
		if ev.object != objRegistry || ev.opcode != evRegistryGlobal {
			return
		}
		r := reader{body: ev.body}
		name, err := r.uint()
		if err != nil {
			return
		}
		iface, err := r.str()
		if err != nil {
			return
		}
		switch iface {
		case ifaceSeat:
			s.seat = name
		case ifaceManager:
			s.manager = name
		}
	})
	if err != nil {
		return err
	}

	if s.seat == 0 {
		return errors.New("wayland: no wl_seat advertised")
	}
	if s.manager == 0 {
		return ErrUnsupported
	}
	return nil
}

type request struct {
	object uint32
	opcode uint16
	body   args
}

// claim creates a data source offering every MIME type and makes it the
// seat's selection.
func (s *session) claim() error {
	requests := []request{
		{objRegistry, opRegistryBind, args{}.uint(s.seat).str(ifaceSeat).uint(1).uint(objSeat)},
		{objRegistry, opRegistryBind, args{}.uint(s.manager).str(ifaceManager).uint(2).uint(objManager)},
		{objManager, opManagerNewSource, args{}.uint(objSource)},
	}
	for _, mime := range sortedKeys(s.offers) {
		requests = append(requests, request{objSource, opSourceOffer, args{}.str(mime)})
	}
	requests = append(requests,
		request{objManager, opManagerGetDevice, args{}.uint(objDevice).uint(objSeat)},
		request{objDevice, opDeviceSetSelection, args{}.uint(objSource)},
		request{objDisplay, opDisplaySync, args{}.uint(objClaimDone)},
	)

	for _, r := range requests {
		if err := s.send(r.object, r.opcode, r.body); err != nil {
			return err
		}
	}
	return s.until(objClaimDone, nil)
}

// serve writes offered bytes to every fd the compositor hands us.
func (s *session) serve() error {
	for {
		ev, err := s.next()
		if err != nil {
			// Compositor gone: nothing left to own.
			return nil
		}
		if ev.object != objSource {
			ev.closeFd()
			continue
		}
		switch ev.opcode {
		case evSourceSend:
			s.answer(ev)
		case evSourceCancel:
			ev.closeFd()
			return nil
		default:
			ev.closeFd()
		}
	}
}

func (s *session) answer(ev event) {
	defer ev.closeFd()
	if ev.fd < 0 {
		return
	}
	r := reader{body: ev.body}
	mime, err := r.str()
	if err != nil {
		return
	}
	data, ok := s.offers[mime]
	for ok && len(data) > 0 {
		n, err := syscall.Write(ev.fd, data)
		if err != nil || n <= 0 {
			return
		}
		data = data[n:]
	}
}

// until reads events, passing each to fn, until callback reports done.
func (s *session) until(callback uint32, fn func(event)) error {
	for {
		ev, err := s.next()
		if err != nil {
			return err
		}
		ev.closeFd()
		if ev.object == callback && ev.opcode == evCallbackDone {
			return nil
		}
		if fn != nil {
			fn(ev)
		}
	}
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
