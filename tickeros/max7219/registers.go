package max7219

// Register addresses shared by MAX7219 and MAX7221.
const (
	RegNoop        byte = 0x00
	RegDigit0      byte = 0x01
	RegDecodeMode  byte = 0x09
	RegIntensity   byte = 0x0A
	RegScanLimit   byte = 0x0B
	RegShutdown    byte = 0x0C
	RegDisplayTest byte = 0x0F
)

// Lines is the number of digit registers (matrix lines) per chip.
const Lines = 8
