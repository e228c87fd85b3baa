//go:build !linux

package clipboard

import atotto "github.com/atotto/clipboard"

func writeMultiFormat(flavors Flavors) error {
	return atotto.WriteAll(flavors.Plain())
}

// Serve is only used by the Wayland selection owner on Linux.
func Serve(flavors Flavors) error {
	return nil
}
