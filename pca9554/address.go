// address.go
//
// The PCA9554 answers on 0x20 + (A2 A1 A0), where A2..A0 are the hardware
// strap pins. Address only has these 8 values; ParseAddress is the single
// way in from an arbitrary byte.
//
package pca9554

import (
	"errors"
	"fmt"
)

// Address is a 7-bit PCA9554 bus address.
type Address uint8

const (
	Addr0x20 Address = 0x20
	Addr0x21 Address = 0x21
	Addr0x22 Address = 0x22
	Addr0x23 Address = 0x23
	Addr0x24 Address = 0x24
	Addr0x25 Address = 0x25
	Addr0x26 Address = 0x26
	Addr0x27 Address = 0x27

	DefaultAddress = Addr0x20
)

// ErrNoMatchingAddress is returned by ParseAddress for bytes outside 0x20..0x27.
var ErrNoMatchingAddress = errors.New("pca9554: no matching address")

// ParseAddress converts a raw byte into an Address.
func ParseAddress(b uint8) (Address, error) {
	switch a := Address(b); a {
	case Addr0x20, Addr0x21, Addr0x22, Addr0x23,
		Addr0x24, Addr0x25, Addr0x26, Addr0x27:
		return a, nil
	default:
		return 0, ErrNoMatchingAddress
	}
}

func (a Address) String() string { return fmt.Sprintf("0x%02X", uint8(a)) }
