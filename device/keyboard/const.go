package keyboard

// BufferSize is the ingest ring slot count for keyboard pipelines.
const BufferSize = 128

// Scan code framing (PS/2 set 1): bit 7 distinguishes break (release) codes
// from make (press) codes; the low 7 bits are the base scan code.
const (
	ScanReleaseBit = 0x80
	ScanCodeMask   = 0x7F
)
