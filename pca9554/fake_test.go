package pca9554

import (
	"errors"
	"fmt"
	"sync"

	"github.com/reef-pi/rpi/i2c"
)

var _ i2c.Bus = (*fakeChip)(nil)

// fakeChip is a reef-pi i2c.Bus with one PCA9554 behind it.
// It records every call as a short string, e.g. "write 0x20 [01 0f]".
type fakeChip struct {
	mu   sync.Mutex
	addr byte
	regs map[byte]byte

	// pins holds the external level of pins configured as inputs.
	pins byte

	// failOn makes the named method ("WriteBytes", "ReadFromReg", ...) fail.
	failOn  string
	failErr error

	calls []string
}

func newFakeChip(addr byte) *fakeChip {
	return &fakeChip{
		addr: addr,
		// PCA9554 power-on defaults
		regs: map[byte]byte{0x00: 0x00, 0x01: 0xFF, 0x02: 0x00, 0x03: 0xFF},
	}
}

var errNoDevice = errors.New("fake: no device at address")

func (c *fakeChip) record(format string, args ...interface{}) {
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
}

func (c *fakeChip) fail(method string) error {
	if c.failOn == method {
		return c.failErr
	}
	return nil
}

// inputPort is what the chip reports in register 0.
func (c *fakeChip) inputPort() byte {
	cfg := c.regs[0x03]
	level := (c.pins & cfg) | (c.regs[0x01] &^ cfg)
	return level ^ c.regs[0x02]
}

func (c *fakeChip) ReadBytes(addr byte, num int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("readbytes 0x%02x %d", addr, num)
	if err := c.fail("ReadBytes"); err != nil {
		return nil, err
	}
	if addr != c.addr {
		return nil, errNoDevice
	}
	return make([]byte, num), nil
}

func (c *fakeChip) WriteBytes(addr byte, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("write 0x%02x % x", addr, value)
	if err := c.fail("WriteBytes"); err != nil {
		return err
	}
	if addr != c.addr {
		return errNoDevice
	}
	if len(value) == 2 {
		c.regs[value[0]] = value[1]
	}
	return nil
}

func (c *fakeChip) ReadFromReg(addr, reg byte, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("readreg 0x%02x 0x%02x", addr, reg)
	if err := c.fail("ReadFromReg"); err != nil {
		return err
	}
	if addr != c.addr {
		return errNoDevice
	}
	if len(value) > 0 {
		if reg == 0x00 {
			value[0] = c.inputPort()
		} else {
			value[0] = c.regs[reg]
		}
	}
	return nil
}

func (c *fakeChip) WriteToReg(addr, reg byte, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("writereg 0x%02x 0x%02x % x", addr, reg, value)
	if err := c.fail("WriteToReg"); err != nil {
		return err
	}
	if len(value) > 0 {
		c.regs[reg] = value[0]
	}
	return nil
}

func (c *fakeChip) SetAddress(addr byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("setaddress 0x%02x", addr)
	return c.fail("SetAddress")
}

func (c *fakeChip) Close() error { return nil }

func (c *fakeChip) reg(r byte) byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regs[r]
}

func (c *fakeChip) setPins(b byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pins = b
}

func (c *fakeChip) log() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *fakeChip) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = nil
}
