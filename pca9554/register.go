// register.go
//
// PCA9554 register map. All registers are one byte wide.
// 0x40.. are the extended registers of the PCAL-class parts; nothing
// in this package drives them yet.
//
package pca9554

import "fmt"

type register uint8

const (
	regInputPort         register = 0x00
	regOutputPort        register = 0x01
	regPolarityInversion register = 0x02
	regConfigPort        register = 0x03
	regOutputDrive0      register = 0x40
	regOutputDrive1      register = 0x41
	regInputLatch        register = 0x42
	regPullUpDownEnable  register = 0x43
	regPullUpDownSelect  register = 0x44
	regInterruptMask     register = 0x45
	regInterruptStatus   register = 0x46
	regOutputPortConfig  register = 0x4F
)

func (r register) String() string {
	switch r {
	case regInputPort:
		return "INPUT_PORT"
	case regOutputPort:
		return "OUTPUT_PORT"
	case regPolarityInversion:
		return "POLARITY_INVERSION"
	case regConfigPort:
		return "CONFIG_PORT"
	case regOutputDrive0:
		return "OUTPUT_DRIVE_0"
	case regOutputDrive1:
		return "OUTPUT_DRIVE_1"
	case regInputLatch:
		return "INPUT_LATCH"
	case regPullUpDownEnable:
		return "PULLUPDOWN_EN"
	case regPullUpDownSelect:
		return "PULLUPDOWN_SEL"
	case regInterruptMask:
		return "INTERRUPT_MASK"
	case regInterruptStatus:
		return "INTERRUPT_STATUS"
	case regOutputPortConfig:
		return "OUTPUT_PORT_CONFIG"
	default:
		return fmt.Sprintf("0x%02X", uint8(r))
	}
}
