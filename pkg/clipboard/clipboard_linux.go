//go:build linux

package clipboard

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"fancylink/pkg/clipboard/internal/wayland"
	"fancylink/pkg/logger"

	atotto "github.com/atotto/clipboard"
)

func writeMultiFormat(flavors Flavors) error {
	if os.Getenv("WAYLAND_DISPLAY") == "" {
		// X11: atotto only speaks plain text.
		logger.Debug().Strs("dropped", flavors.Types()).Msg("no Wayland display, copying plain text only")
		return atotto.WriteAll(flavors.Plain())
	}
	return spawnSelectionOwner(flavors)
}

// spawnSelectionOwner re-executes the running binary detached from this
// process group; the child owns the selection after we exit.
func spawnSelectionOwner(flavors Flavors) error {
	payload, err := EncodePayload(flavors)
	if err != nil {
		return err
	}

	self, err := os.Executable()
	if err != nil {
		self = os.Args[0]
	}

	cmd := exec.Command(self, ServeCommand)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start clipboard owner: %w", err)
	}
	logger.Debug().Int("pid", cmd.Process.Pid).Strs("types", flavors.Types()).Msg("clipboard owner started")
	return cmd.Process.Release()
}

// Serve owns the Wayland selection and serves flavors until ownership is
// lost. It blocks; ServeCommand calls it.
func Serve(flavors Flavors) error {
	return wayland.Serve(flavors.withPlainAliases())
}
