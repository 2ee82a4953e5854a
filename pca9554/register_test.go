package pca9554

import "testing"

func TestRegisterMap(t *testing.T) {
	tests := []struct {
		reg    register
		offset byte
		name   string
	}{
		{regInputPort, 0x00, "INPUT_PORT"},
		{regOutputPort, 0x01, "OUTPUT_PORT"},
		{regPolarityInversion, 0x02, "POLARITY_INVERSION"},
		{regConfigPort, 0x03, "CONFIG_PORT"},
		{regOutputDrive0, 0x40, "OUTPUT_DRIVE_0"},
		{regOutputDrive1, 0x41, "OUTPUT_DRIVE_1"},
		{regInputLatch, 0x42, "INPUT_LATCH"},
		{regPullUpDownEnable, 0x43, "PULLUPDOWN_EN"},
		{regPullUpDownSelect, 0x44, "PULLUPDOWN_SEL"},
		{regInterruptMask, 0x45, "INTERRUPT_MASK"},
		{regInterruptStatus, 0x46, "INTERRUPT_STATUS"},
		{regOutputPortConfig, 0x4F, "OUTPUT_PORT_CONFIG"},
	}
	for _, tt := range tests {
		if byte(tt.reg) != tt.offset {
			t.Errorf("%s = 0x%02X, want 0x%02X", tt.name, byte(tt.reg), tt.offset)
		}
		if got := tt.reg.String(); got != tt.name {
			t.Errorf("register(0x%02X).String() = %q, want %q", tt.offset, got, tt.name)
		}
	}
	if got := register(0x10).String(); got != "0x10" {
		t.Errorf("unknown register String() = %q", got)
	}
}
