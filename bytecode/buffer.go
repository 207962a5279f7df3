package bytecode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/creek-lang/creek/op"
)

// MaxStringLen is the longest string the int16 length prefix can describe.
const MaxStringLen = math.MaxInt16

// Buffer is a FIFO byte buffer with little-endian primitive codecs.
type Buffer struct {
	data []byte
	off  int
}

// NewBuffer returns a buffer whose unread bytes are data. The buffer takes
// ownership of the slice.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return len(b.data) - b.off
}

// Offset returns the number of bytes consumed so far.
func (b *Buffer) Offset() int {
	return b.off
}

// Bytes returns the unread bytes. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data[b.off:]
}

// Write appends raw bytes.
func (b *Buffer) Write(p []byte) {
	b.data = append(b.data, p...)
}

// Append appends the unread bytes of other.
func (b *Buffer) Append(other *Buffer) {
	if other == nil {
		return
	}
	b.data = append(b.data, other.Bytes()...)
}

// Read consumes exactly n bytes.
func (b *Buffer) Read(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative read of %d bytes at offset %d", ErrInvalidBytecode, n, b.off)
	}
	if b.Len() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrBufferExhausted, n, b.off, b.Len())
	}
	p := b.data[b.off : b.off+n]
	b.off += n
	return p, nil
}

func (b *Buffer) WriteInt8(v int8) {
	b.data = append(b.data, byte(v))
}

func (b *Buffer) WriteInt16(v int16) {
	b.data = binary.LittleEndian.AppendUint16(b.data, uint16(v))
}

func (b *Buffer) WriteInt32(v int32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, uint32(v))
}

func (b *Buffer) WriteInt64(v int64) {
	b.data = binary.LittleEndian.AppendUint64(b.data, uint64(v))
}

func (b *Buffer) WriteUint8(v uint8)   { b.WriteInt8(int8(v)) }
func (b *Buffer) WriteUint16(v uint16) { b.WriteInt16(int16(v)) }
func (b *Buffer) WriteUint32(v uint32) { b.WriteInt32(int32(v)) }
func (b *Buffer) WriteUint64(v uint64) { b.WriteInt64(int64(v)) }

func (b *Buffer) WriteFloat32(v float32) {
	b.WriteUint32(math.Float32bits(v))
}

func (b *Buffer) WriteFloat64(v float64) {
	b.WriteUint64(math.Float64bits(v))
}

func (b *Buffer) WriteBool(v bool) {
	if v {
		b.WriteUint8(1)
	} else {
		b.WriteUint8(0)
	}
}

// WriteString writes an int16 length prefix and the raw bytes.
func (b *Buffer) WriteString(s string) error {
	if len(s) > MaxStringLen {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrStringTooLong, len(s), MaxStringLen)
	}
	b.WriteInt16(int16(len(s)))
	b.data = append(b.data, s...)
	return nil
}

// WriteOp writes a one-byte opcode tag.
func (b *Buffer) WriteOp(code op.Code) {
	b.WriteUint8(uint8(code))
}

func (b *Buffer) ReadInt8() (int8, error) {
	p, err := b.Read(1)
	if err != nil {
		return 0, err
	}
	return int8(p[0]), nil
}

func (b *Buffer) ReadInt16() (int16, error) {
	p, err := b.Read(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(p)), nil
}

func (b *Buffer) ReadInt32() (int32, error) {
	p, err := b.Read(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(p)), nil
}

func (b *Buffer) ReadInt64() (int64, error) {
	p, err := b.Read(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(p)), nil
}

func (b *Buffer) ReadUint8() (uint8, error) {
	v, err := b.ReadInt8()
	return uint8(v), err
}

func (b *Buffer) ReadUint16() (uint16, error) {
	v, err := b.ReadInt16()
	return uint16(v), err
}

func (b *Buffer) ReadUint32() (uint32, error) {
	v, err := b.ReadInt32()
	return uint32(v), err
}

func (b *Buffer) ReadUint64() (uint64, error) {
	v, err := b.ReadInt64()
	return uint64(v), err
}

func (b *Buffer) ReadFloat32() (float32, error) {
	v, err := b.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (b *Buffer) ReadFloat64() (float64, error) {
	v, err := b.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadBool reads one byte. Any value other than 0 or 1 is rejected.
func (b *Buffer) ReadBool() (bool, error) {
	v, err := b.ReadUint8()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: bool byte 0x%02X at offset %d", ErrInvalidBytecode, v, b.off-1)
	}
}

// ReadString reads an int16 length prefix and that many bytes.
func (b *Buffer) ReadString() (string, error) {
	start := b.off
	n, err := b.ReadInt16()
	if err != nil {
		return "", err
	}
	if n < 0 {
		b.off = start
		return "", fmt.Errorf("%w: negative string length %d at offset %d", ErrInvalidBytecode, n, start)
	}
	p, err := b.Read(int(n))
	if err != nil {
		b.off = start
		return "", err
	}
	return string(p), nil
}

// ReadCount reads an int32 element count and checks it is plausible: it must
// be non-negative and no larger than the bytes left, since every element
// takes at least one byte.
func (b *Buffer) ReadCount() (int, error) {
	n, err := b.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 || int(n) > b.Len() {
		return 0, fmt.Errorf("%w: count %d at offset %d with %d bytes left",
			ErrInvalidBytecode, n, b.off-4, b.Len())
	}
	return int(n), nil
}

// ReadOp reads a one-byte opcode tag.
func (b *Buffer) ReadOp() (op.Code, error) {
	v, err := b.ReadUint8()
	return op.Code(v), err
}
