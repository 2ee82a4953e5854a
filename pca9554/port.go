// port.go
//
// Port is the payload of every per-pin register on the PCA9554:
// bit i <-> pin i, for input levels, output latches, direction and polarity.
//
// The chip defines no reserved bits, so every byte is a valid Port.
//
package pca9554

import "strings"

// Port is an 8-bit pin flag set.
type Port uint8

const (
	P00 Port = 1 << iota
	P01
	P02
	P03
	P04
	P05
	P06
	P07
)

const (
	PortEmpty Port = 0
	PortAll   Port = 0xFF
)

// PortFromBits reinterprets a raw register byte as a Port.
func PortFromBits(b uint8) Port { return Port(b) }

// PortPin returns the single flag for pin n (0..7).
func PortPin(n int) (Port, bool) {
	if n < 0 || n > 7 {
		return PortEmpty, false
	}
	return Port(1 << uint(n)), true
}

func (p Port) Bits() uint8 { return uint8(p) }

func (p Port) Union(o Port) Port               { return p | o }
func (p Port) Intersect(o Port) Port           { return p & o }
func (p Port) Complement() Port                { return ^p }
func (p Port) SymmetricDifference(o Port) Port { return p ^ o }

// Contains reports whether every pin set in o is also set in p.
func (p Port) Contains(o Port) bool { return p&o == o }

// Intersects reports whether p and o share at least one pin.
func (p Port) Intersects(o Port) bool { return p&o != 0 }

func (p Port) IsEmpty() bool { return p == 0 }

var pinNames = [8]string{"P00", "P01", "P02", "P03", "P04", "P05", "P06", "P07"}

// String lists the set pins, e.g. "P01|P03". An empty Port prints as "0".
func (p Port) String() string {
	if p == 0 {
		return "0"
	}
	var names []string
	for i, n := range pinNames {
		if p&(1<<uint(i)) != 0 {
			names = append(names, n)
		}
	}
	return strings.Join(names, "|")
}
