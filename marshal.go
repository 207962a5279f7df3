package creek

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/creek-lang/creek/ast"
	"github.com/creek-lang/creek/bytecode"
	"github.com/creek-lang/creek/symbol"
)

// Magic is the fixed header every bytecode file starts with.
var Magic = [8]byte{0x00, 0x11, 0x22, 'C', 'R', 'E', 'E', 'K'}

// PointerWidth is the pointer width in bytes of this host. Files record
// the width of the host that wrote them and only load on a matching host.
const PointerWidth = strconv.IntSize / 8

// Marshal returns the bytecode file contents for the tree rooted at root.
// The tree is validated first and every problem found is reported.
func Marshal(root ast.Node) ([]byte, error) {
	if err := ast.Validate(root); err != nil {
		return nil, err
	}
	m := symbol.NewMap()
	body, err := ast.Encode(root, m)
	if err != nil {
		return nil, err
	}
	out := bytecode.NewBuffer(nil)
	out.Write(Magic[:])
	out.WriteUint8(PointerWidth)
	entries := m.Entries()
	out.WriteInt32(int32(len(entries)))
	for _, entry := range entries {
		out.WriteInt32(entry.ID)
		if err := out.WriteString(entry.Name); err != nil {
			return nil, fmt.Errorf("symbol %d: %w", entry.ID, err)
		}
	}
	out.Append(body)
	return out.Bytes(), nil
}

// Unmarshal decodes bytecode file contents. The header must match exactly
// and the data must hold exactly one expression tree.
func Unmarshal(data []byte) (ast.Node, error) {
	root, _, err := unmarshal(data)
	return root, err
}

func unmarshal(data []byte) (ast.Node, *symbol.Map, error) {
	buf := bytecode.NewBuffer(data)
	header, err := buf.Read(len(Magic))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", bytecode.ErrBadMagic, err)
	}
	if !bytes.Equal(header, Magic[:]) {
		return nil, nil, fmt.Errorf("%w: got % x", bytecode.ErrBadMagic, header)
	}
	width, err := buf.ReadUint8()
	if err != nil {
		return nil, nil, err
	}
	if width != PointerWidth {
		return nil, nil, fmt.Errorf("%w: file has %d-byte pointers, this host has %d-byte pointers",
			bytecode.ErrPointerWidth, width, PointerWidth)
	}
	m, err := readSymbols(buf)
	if err != nil {
		return nil, nil, err
	}
	root, err := ast.Decode(buf, m)
	if err != nil {
		return nil, nil, err
	}
	if n := buf.Len(); n != 0 {
		return nil, nil, fmt.Errorf("%w: %d trailing bytes after program", bytecode.ErrInvalidBytecode, n)
	}
	return root, m, nil
}

func readSymbols(buf *bytecode.Buffer) (*symbol.Map, error) {
	n, err := buf.ReadCount()
	if err != nil {
		return nil, fmt.Errorf("symbol table: %w", err)
	}
	m := symbol.NewMap()
	for i := 0; i < n; i++ {
		id, err := buf.ReadInt32()
		if err != nil {
			return nil, fmt.Errorf("symbol table: %w", err)
		}
		name, err := buf.ReadString()
		if err != nil {
			return nil, fmt.Errorf("symbol table: %w", err)
		}
		if err := m.Register(id, name); err != nil {
			return nil, fmt.Errorf("%w: symbol table: %w", bytecode.ErrInvalidBytecode, err)
		}
	}
	return m, nil
}

// Save writes the bytecode for root to path.
func Save(path string, root ast.Node, opts ...Option) error {
	o := collectOptions(opts...)
	data, err := Marshal(root)
	if err != nil {
		o.logger.Warn().Err(err).Str("path", path).Msg("save failed")
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		o.logger.Warn().Err(err).Str("path", path).Msg("save failed")
		return err
	}
	stats := ast.Measure(root)
	o.logger.Debug().
		Str("path", path).
		Int("bytes", len(data)).
		Int("nodes", stats.NodeCount).
		Int("depth", stats.MaxDepth).
		Stringer("root", root.Op()).
		Msg("saved bytecode")
	return nil
}

// Load reads and decodes the bytecode file at path.
func Load(path string, opts ...Option) (ast.Node, error) {
	o := collectOptions(opts...)
	data, err := os.ReadFile(path)
	if err != nil {
		o.logger.Warn().Err(err).Str("path", path).Msg("load failed")
		return nil, err
	}
	root, m, err := unmarshal(data)
	if err != nil {
		o.logger.Warn().Err(err).Str("path", path).Msg("load failed")
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	o.logger.Debug().
		Str("path", path).
		Int("bytes", len(data)).
		Int("symbols", m.Len()).
		Int("nodes", ast.Measure(root).NodeCount).
		Stringer("root", root.Op()).
		Msg("loaded bytecode")
	return root, nil
}
