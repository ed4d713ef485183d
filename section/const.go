package section

// Raw format sizes.
const (
	HeaderSize = 8  // leafCount uint32, nodeCount uint32
	RecordSize = 24 // R, G, B, pad, area uint32, 4 x int32 children

	// MaxNodes is the largest node count whose record section still fits the
	// int32 child references.
	MaxNodes = 1<<31 - 1
)

// Record field offsets.
const (
	recordColorOffset    = 0
	recordPadOffset      = 3
	recordAreaOffset     = 4
	recordChildrenOffset = 8
)

// Container layout.
const (
	ContainerMagic      = 0x5154 // "QT" little-endian
	ContainerHeaderSize = 16

	// FlagBigEndian marks a container whose raw payload uses big-endian
	// header and record integers.
	FlagBigEndian = 0x01
	// flagReservedMask covers flag bits that must be zero.
	flagReservedMask = 0xFE
)
