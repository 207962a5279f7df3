// Package bytecode provides the primitive wire codec used by Creek bytecode
// files.
//
// A [Buffer] is a FIFO byte sequence. Writers append fixed-width values and
// length-prefixed strings; readers consume them in the same order. Every
// multi-byte value is little-endian on the wire regardless of the host.
//
// # Encodings
//
//   - int8/16/32/64: two's complement, little-endian
//   - uint8/16/32/64: the signed encoding of the same bit pattern
//   - float32/float64: IEEE-754 bits, little-endian
//   - bool: one byte, 0 or 1
//   - string: int16 length followed by the raw bytes, at most 32767 bytes
//   - opcode: one byte
//
// Node encodings compose by appending a child's buffer to the parent's:
//
//	buf := bytecode.NewBuffer(nil)
//	buf.WriteOp(op.Add)
//	buf.Append(left)
//	buf.Append(right)
//
// Reads never return partial data. A short read fails with an error wrapping
// [ErrBufferExhausted] and leaves the buffer position unchanged.
package bytecode
