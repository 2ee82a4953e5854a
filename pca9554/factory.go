// factory.go
//
// PCA9554 driver factory for reef-pi.
//
// This file integrates the PCA9554 (8-bit I2C GPIO expander) into reef-pi's HAL:
//
//   - Declares driver metadata (name/description/capabilities)
//   - Exposes UI configuration parameters
//   - Validates configuration
//   - Constructs a driver instance and programs direction + polarity
//
// Unlike the PCF857x, the PCA9554 has real registers: direction (CONFIG_PORT)
// and polarity inversion are set once here, at driver creation. A config bit
// of 1 makes the pin an input, 0 an output. Power-on default is all inputs.
//
package pca9554

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/reef-pi/hal"
	"github.com/reef-pi/rpi/i2c"
)

const (
	driverName = "pca9554"

	paramAddress  = "Address"  // string, e.g. "0x20"
	paramInputs   = "Inputs"   // string pin mask, bit=1 => input
	paramInverted = "Inverted" // string pin mask, bit=1 => inverted input polarity
	paramDebug    = "Debug"    // bool
)

type factory struct {
	meta       hal.Metadata
	parameters []hal.ConfigParameter
}

var (
	f    *factory
	once sync.Once
)

func Factory() hal.DriverFactory {
	once.Do(func() {
		f = &factory{
			meta: hal.Metadata{
				Name:        driverName,
				Description: "PCA9554 8-bit I2C GPIO expander (8 pins). Inputs mask bit=1 => input, bit=0 => output.",
				Capabilities: []hal.Capability{
					hal.DigitalInput,
					hal.DigitalOutput,
				},
			},
			parameters: []hal.ConfigParameter{
				{Name: paramAddress, Type: hal.String, Order: 0, Default: "0x20"},
				{Name: paramInputs, Type: hal.String, Order: 1, Default: "0xFF"},
				{Name: paramInverted, Type: hal.String, Order: 2, Default: "0x00"},
				{Name: paramDebug, Type: hal.Boolean, Order: 3, Default: false},
			},
		}
	})
	return f
}

func (f *factory) Metadata() hal.Metadata               { return f.meta }
func (f *factory) GetParameters() []hal.ConfigParameter { return f.parameters }

func (f *factory) ValidateParameters(params map[string]interface{}) (bool, map[string][]string) {
	errs := make(map[string][]string)

	if v, ok := getAny(params, paramAddress); !ok {
		errs[paramAddress] = append(errs[paramAddress], "is required (e.g. 0x20)")
	} else if _, err := parseAddress(v); err != nil {
		errs[paramAddress] = append(errs[paramAddress], err.Error())
	}

	for _, k := range []string{paramInputs, paramInverted} {
		if v, ok := getAny(params, k); ok {
			if _, err := parseMask(v); err != nil {
				errs[k] = append(errs[k], err.Error())
			}
		}
	}

	if v, ok := getAny(params, paramDebug); ok {
		if _, ok := v.(bool); !ok {
			errs[paramDebug] = append(errs[paramDebug], "must be boolean")
		}
	}

	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

func (f *factory) NewDriver(params map[string]interface{}, bus interface{}) (hal.Driver, error) {
	if ok, failures := f.ValidateParameters(params); !ok {
		return nil, errors.New(hal.ToErrorString(failures))
	}

	i2cBus, ok := bus.(i2c.Bus)
	if !ok {
		return nil, fmt.Errorf("pca9554: expected i2c.Bus, got %T", bus)
	}

	v, _ := getAny(params, paramAddress)
	addr, err := parseAddress(v)
	if err != nil {
		return nil, fmt.Errorf("pca9554: invalid Address %v: %w", v, err)
	}

	inputs := PortAll
	if v, ok := getAny(params, paramInputs); ok {
		if inputs, err = parseMask(v); err != nil {
			return nil, fmt.Errorf("pca9554: invalid %s %v: %w", paramInputs, v, err)
		}
	}

	inverted := PortEmpty
	if v, ok := getAny(params, paramInverted); ok {
		if inverted, err = parseMask(v); err != nil {
			return nil, fmt.Errorf("pca9554: invalid %s %v: %w", paramInverted, v, err)
		}
	}

	debug := false
	if v, ok := getAny(params, paramDebug); ok {
		debug, _ = v.(bool)
	}

	// Only dump raw parameters when debug is enabled (keeps journal clean).
	if debug {
		if b, err := json.MarshalIndent(params, "", "  "); err == nil {
			log.Printf("pca9554 NewDriver params:\n%s", string(b))
		}
	}

	d := newDriver(New(addr), ReefBus(i2cBus), inputs, debug, f.meta)

	if err := d.configure(inputs, inverted); err != nil {
		return nil, err
	}

	log.Printf("pca9554 init addr=0x%02X inputs=0x%02X (%s) inverted=0x%02X (%s) debug=%v",
		uint8(addr), inputs.Bits(), inputs, inverted.Bits(), inverted, debug)

	return d, nil
}

// ---------- parsing helpers ----------

// parseAddress accepts "0x20" style hex, "32" style decimal, or an int and
// returns one of the 8 PCA9554 strap addresses.
func parseAddress(v interface{}) (Address, error) {
	n, err := parseByte(v)
	if err != nil {
		return 0, fmt.Errorf("must be an I2C address like 0x20..0x27: %v", err)
	}
	a, err := ParseAddress(n)
	if err != nil {
		return 0, fmt.Errorf("must be one of 0x20..0x27 (A2..A0 straps), got 0x%02X", n)
	}
	return a, nil
}

// parseMask accepts "0xF0", "240", "0b11110000" or an int 0..255.
func parseMask(v interface{}) (Port, error) {
	n, err := parseByte(v)
	if err != nil {
		return PortEmpty, fmt.Errorf("must be a pin mask 0x00..0xFF: %v", err)
	}
	return PortFromBits(n), nil
}

func parseByte(v interface{}) (uint8, error) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(strings.ToLower(t))
		if s == "" {
			return 0, fmt.Errorf("empty value")
		}
		base := 10
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0b") {
			base = 0
		}
		n, err := strconv.ParseUint(s, base, 8)
		if err != nil {
			return 0, err
		}
		return uint8(n), nil
	default:
		i, ok := hal.ConvertToInt(v)
		if !ok {
			return 0, fmt.Errorf("not a number: %v", v)
		}
		if i < 0 || i > 0xFF {
			return 0, fmt.Errorf("out of range (0..255): %d", i)
		}
		return uint8(i), nil
	}
}

// getAny fetches a parameter by key (case-insensitive).
func getAny(m map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := m[key]; ok {
		return unwrapValue(v), true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return unwrapValue(v), true
		}
	}
	return nil, false
}

// unwrapValue allows older/odd parameter payload shapes like {value: X}.
func unwrapValue(v interface{}) interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		for _, k := range []string{"value", "Value"} {
			if vv, ok := m[k]; ok {
				return vv
			}
		}
	}
	return v
}
