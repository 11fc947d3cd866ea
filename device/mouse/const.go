package mouse

// BufferSize is the ingest ring slot count for mouse pipelines. It must be a
// multiple of PacketSize so a full buffer can never split a packet across the
// wraparound boundary.
const (
	BufferSize = 256
	PacketSize = 3
)

// Status byte (packet byte 0) bit layout:
// [Y overflow | X overflow | Y sign | X sign | 1 | Middle | Right | Left]
const (
	btnLeft   = 1 << 0
	btnRight  = 1 << 1
	btnMiddle = 1 << 2
	alwaysOne = 1 << 3
	xSign     = 1 << 4
	ySign     = 1 << 5
	xOverflow = 1 << 6
	yOverflow = 1 << 7
)
