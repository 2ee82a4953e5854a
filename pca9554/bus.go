// bus.go
//
// Transport adapters.
//
// periph.io and tinygo buses already speak Tx(addr, w, r) and can be handed
// to a Device directly. reef-pi hands drivers an rpi/i2c.Bus, which splits
// the same transactions into WriteBytes / ReadFromReg / ReadBytes; ReefBus
// maps one onto the other.
//
package pca9554

import (
	"errors"
	"fmt"

	"github.com/reef-pi/rpi/i2c"
	periphi2c "periph.io/x/conn/v3/i2c"
	"tinygo.org/x/drivers"
)

var (
	_ Bus = periphi2c.Bus(nil)
	_ Bus = drivers.I2C(nil)
)

// ErrAddressRange is returned by ReefBus for addresses that do not fit in 7 bits.
var ErrAddressRange = errors.New("pca9554: bus address out of 7-bit range")

type reefAdapter struct {
	bus i2c.Bus
}

// ReefBus adapts a reef-pi i2c.Bus to Bus. Errors from the reef-pi bus are
// returned unchanged.
func ReefBus(b i2c.Bus) Bus {
	return &reefAdapter{bus: b}
}

func (a *reefAdapter) Tx(addr uint16, w, r []byte) error {
	if addr > 0x7F {
		return ErrAddressRange
	}
	a7 := byte(addr)

	switch {
	case len(r) == 0 && len(w) == 0:
		return nil
	case len(r) == 0:
		return a.bus.WriteBytes(a7, w)
	case len(w) == 1:
		return a.bus.ReadFromReg(a7, w[0], r)
	}

	// Generic write-then-read. reef-pi exposes no repeated start for
	// multi-byte writes, so this is two bus operations.
	if len(w) > 0 {
		if err := a.bus.WriteBytes(a7, w); err != nil {
			return err
		}
	}
	b, err := a.bus.ReadBytes(a7, len(r))
	if err != nil {
		return err
	}
	if len(b) < len(r) {
		return fmt.Errorf("pca9554 addr=0x%02X: short read: got %d bytes, want %d", a7, len(b), len(r))
	}
	copy(r, b)
	return nil
}
