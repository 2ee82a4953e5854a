// pca9554.go
//
// Low-level PCA9554 I2C access.
//
// PCA9554 Low-Voltage 8-Bit I2C and SMBus Low-Power I/O Expander
// https://www.ti.com/lit/ds/symlink/pca9554.pdf
//
// Every operation is exactly one bus transaction:
//   - register read:  write [reg], then read 1 byte (repeated start)
//   - register write: write [reg, value]
//
// The Device holds only its address. The bus is passed to every call
// because it is normally shared with other peripherals; serializing access
// to it is up to the caller. Nothing is cached, nothing is retried, and
// bus errors are returned exactly as the bus produced them.
//
package pca9554

// Bus is the transport the driver needs: an addressed write (r == nil) and
// an addressed write-then-read. periph.io i2c.Bus and tinygo drivers.I2C
// both satisfy it; see ReefBus for reef-pi.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

// Device is one PCA9554 at a fixed strap address.
type Device struct {
	addr Address
}

func New(addr Address) *Device {
	return &Device{addr: addr}
}

func (d *Device) Address() Address { return d.addr }

// read fetches one register.
func (d *Device) read(bus Bus, reg register) (Port, error) {
	var buf [1]byte
	if err := bus.Tx(uint16(d.addr), []byte{byte(reg)}, buf[:]); err != nil {
		return PortEmpty, err
	}
	return PortFromBits(buf[0]), nil
}

// write stores one register.
func (d *Device) write(bus Bus, reg register, p Port) error {
	return bus.Tx(uint16(d.addr), []byte{byte(reg), p.Bits()}, nil)
}

// ReadInputs returns the incoming logic levels of all pins, regardless of
// whether a pin is configured as input or output.
func (d *Device) ReadInputs(bus Bus) (Port, error) {
	return d.read(bus, regInputPort)
}

// ReadOutputs returns the output port register: the state of the output
// flip-flops, not necessarily the level on the pin.
func (d *Device) ReadOutputs(bus Bus) (Port, error) {
	return d.read(bus, regOutputPort)
}

// WriteOutputs sets the output state of pins configured as outputs.
// It has no effect on pins configured as inputs.
func (d *Device) WriteOutputs(bus Bus, out Port) error {
	return d.write(bus, regOutputPort, out)
}

// ClearOutputs drives all outputs low. Same transaction as
// WriteOutputs(bus, PortEmpty).
func (d *Device) ClearOutputs(bus Bus) error {
	return d.write(bus, regOutputPort, PortEmpty)
}

// WriteConfig sets pin direction: 1 = input (high impedance), 0 = output.
func (d *Device) WriteConfig(bus Bus, config Port) error {
	return d.write(bus, regConfigPort, config)
}

// ReadConfig returns pin direction: 1 = input, 0 = output.
func (d *Device) ReadConfig(bus Bus) (Port, error) {
	return d.read(bus, regConfigPort)
}

// SetInverted sets polarity inversion. A set bit inverts the value reported
// in the input port register for that pin; only meaningful for inputs.
func (d *Device) SetInverted(bus Bus, invert Port) error {
	return d.write(bus, regPolarityInversion, invert)
}

// IsInverted returns the polarity inversion register.
func (d *Device) IsInverted(bus Bus) (Port, error) {
	return d.read(bus, regPolarityInversion)
}
