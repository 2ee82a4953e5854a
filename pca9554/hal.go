// hal.go
//
// reef-pi HAL glue for PCA9554.
//
// This file provides:
//   - pin objects implementing hal.DigitalInputPin and hal.DigitalOutputPin
//   - a driver implementing hal.DigitalInputDriver and hal.DigitalOutputDriver
//
// Every pin can be read (the input port reflects the pin level whatever the
// direction). Only pins configured as outputs (Inputs mask bit=0) are
// offered as output pins.
//
// Concurrency / atomicity:
//   - All I2C interactions are protected by a mutex (d.mu).
//   - Output writes are read-modify-write on OUTPUT_PORT, done under the
//     lock so two outlets on the same chip cannot lose each other's update.
//
package pca9554

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/reef-pi/hal"
)

const numPins = 8

// pca9554Pin represents one bit on the expander (0..7).
type pca9554Pin struct {
	driver *pca9554Driver
	pin    int

	// last value successfully written through this pin
	lastState bool
}

func (p *pca9554Pin) Name() string { return fmt.Sprintf("PCA9554:%d", p.pin) }
func (p *pca9554Pin) Number() int  { return p.pin }
func (p *pca9554Pin) Close() error { return nil }

func (p *pca9554Pin) Read() (bool, error) {
	return p.driver.readPin(p.pin)
}

func (p *pca9554Pin) Write(b bool) error {
	return p.driver.writePin(p, b)
}

func (p *pca9554Pin) LastState() bool {
	p.driver.mu.Lock()
	defer p.driver.mu.Unlock()
	return p.lastState
}

// pca9554Driver is the reef-pi driver instance for one chip at one I2C address.
type pca9554Driver struct {
	dev *Device
	bus Bus

	// Serialize ALL interactions with the chip.
	mu sync.Mutex

	// inputs is the direction mask programmed at creation (bit=1 => input).
	inputs Port

	debug bool
	meta  hal.Metadata

	pins []*pca9554Pin
}

func newDriver(dev *Device, bus Bus, inputs Port, debug bool, meta hal.Metadata) *pca9554Driver {
	d := &pca9554Driver{
		dev:    dev,
		bus:    bus,
		inputs: inputs,
		debug:  debug,
		meta:   meta,
	}
	for i := 0; i < numPins; i++ {
		d.pins = append(d.pins, &pca9554Pin{driver: d, pin: i})
	}
	return d
}

func (d *pca9554Driver) Close() error           { return nil }
func (d *pca9554Driver) Metadata() hal.Metadata { return d.meta }

// configure programs direction then polarity.
func (d *pca9554Driver) configure(inputs, inverted Port) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	addr := uint8(d.dev.Address())
	if err := d.dev.WriteConfig(d.bus, inputs); err != nil {
		return fmt.Errorf("pca9554 addr=0x%02X write %s=0x%02X failed: %w", addr, regConfigPort, inputs.Bits(), err)
	}
	if err := d.dev.SetInverted(d.bus, inverted); err != nil {
		return fmt.Errorf("pca9554 addr=0x%02X write %s=0x%02X failed: %w", addr, regPolarityInversion, inverted.Bits(), err)
	}
	d.dbg("configured inputs=%s inverted=%s", inputs, inverted)
	return nil
}

func (d *pca9554Driver) dbg(format string, args ...any) {
	if !d.debug {
		return
	}
	log.Printf("pca9554 addr=0x%02X: %s", uint8(d.dev.Address()), fmt.Sprintf(format, args...))
}

// -----------------------------------------------------------------------------
// Required by hal.DigitalInputDriver / hal.DigitalOutputDriver
// -----------------------------------------------------------------------------

func (d *pca9554Driver) DigitalInputPins() []hal.DigitalInputPin {
	out := make([]hal.DigitalInputPin, len(d.pins))
	for i, p := range d.pins {
		out[i] = p
	}
	return out
}

func (d *pca9554Driver) DigitalOutputPins() []hal.DigitalOutputPin {
	var out []hal.DigitalOutputPin
	for _, p := range d.outputPins() {
		out = append(out, p)
	}
	return out
}

func (d *pca9554Driver) DigitalInputPin(n int) (hal.DigitalInputPin, error) {
	if n < 0 || n >= len(d.pins) {
		return nil, fmt.Errorf("pca9554 addr=0x%02X: invalid pin %d", uint8(d.dev.Address()), n)
	}
	return d.pins[n], nil
}

func (d *pca9554Driver) DigitalOutputPin(n int) (hal.DigitalOutputPin, error) {
	if n < 0 || n >= len(d.pins) {
		return nil, fmt.Errorf("pca9554 addr=0x%02X: invalid pin %d", uint8(d.dev.Address()), n)
	}
	if !d.isOutput(n) {
		return nil, fmt.Errorf("pca9554 addr=0x%02X: pin %d is configured as input (Inputs=0x%02X)",
			uint8(d.dev.Address()), n, d.inputs.Bits())
	}
	return d.pins[n], nil
}

func (d *pca9554Driver) Pins(cap hal.Capability) ([]hal.Pin, error) {
	var pins []hal.Pin
	switch cap {
	case hal.DigitalInput:
		for _, p := range d.pins {
			pins = append(pins, p)
		}
	case hal.DigitalOutput:
		for _, p := range d.outputPins() {
			pins = append(pins, p)
		}
	default:
		return nil, fmt.Errorf("pca9554 addr=0x%02X: unsupported capability: %s", uint8(d.dev.Address()), cap.String())
	}
	sort.Slice(pins, func(i, j int) bool { return pins[i].Number() < pins[j].Number() })
	return pins, nil
}

// -----------------------------------------------------------------------------
// Internal helpers
// -----------------------------------------------------------------------------

func (d *pca9554Driver) isOutput(n int) bool {
	m, ok := PortPin(n)
	return ok && !d.inputs.Intersects(m)
}

func (d *pca9554Driver) outputPins() []*pca9554Pin {
	var out []*pca9554Pin
	for _, p := range d.pins {
		if d.isOutput(p.pin) {
			out = append(out, p)
		}
	}
	return out
}

// readPin reads the actual pin level from INPUT_PORT (after polarity inversion).
func (d *pca9554Driver) readPin(pin int) (bool, error) {
	mask, ok := PortPin(pin)
	if !ok {
		return false, fmt.Errorf("pca9554 addr=0x%02X: read invalid pin=%d", uint8(d.dev.Address()), pin)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	in, err := d.dev.ReadInputs(d.bus)
	if err != nil {
		return false, fmt.Errorf("pca9554 addr=0x%02X read pin=%d: read %s failed: %w",
			uint8(d.dev.Address()), pin, regInputPort, err)
	}

	level := in.Contains(mask)
	d.dbg("read pin=%d: port=%s level=%v", pin, in, level)
	return level, nil
}

// writePin sets one output latch bit. OUTPUT_PORT is read back from the chip
// first, so bits owned by other pins keep whatever value the chip holds.
func (d *pca9554Driver) writePin(p *pca9554Pin, on bool) error {
	addr := uint8(d.dev.Address())
	if !d.isOutput(p.pin) {
		return fmt.Errorf("pca9554 addr=0x%02X: write pin=%d configured as input", addr, p.pin)
	}
	mask, _ := PortPin(p.pin)

	d.mu.Lock()
	defer d.mu.Unlock()

	cur, err := d.dev.ReadOutputs(d.bus)
	if err != nil {
		return fmt.Errorf("pca9554 addr=0x%02X write pin=%d: read %s failed: %w", addr, p.pin, regOutputPort, err)
	}

	next := cur &^ mask
	if on {
		next = next.Union(mask)
	}

	if err := d.dev.WriteOutputs(d.bus, next); err != nil {
		return fmt.Errorf("pca9554 addr=0x%02X write pin=%d: write %s=0x%02X failed: %w",
			addr, p.pin, regOutputPort, next.Bits(), err)
	}
	p.lastState = on

	d.dbg("write pin=%d on=%v: outputs %s -> %s", p.pin, on, cur, next)
	return nil
}
