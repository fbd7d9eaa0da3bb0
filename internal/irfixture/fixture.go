// Package irfixture loads and dumps canned IR programs for the CLI harness
// and tests: a program on disk is a single msgpack-encoded ProgramDTO. This
// is a test/CLI-harness concern only; the three passes never read or write
// fixtures themselves.
package irfixture

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ZenVoich/motoko/internal/ir"
)

// fixtureSchemaVersion guards against decoding a fixture written by an
// incompatible DTO shape.
const fixtureSchemaVersion uint16 = 1

// Encode serializes prog as a ProgramDTO.
func Encode(prog *ir.Program) ([]byte, error) {
	dto := programToDTO(prog)
	b, err := msgpack.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("encode fixture: %w", err)
	}
	return b, nil
}

// Decode deserializes a ProgramDTO back into an ir.Program.
func Decode(b []byte) (*ir.Program, error) {
	var dto ProgramDTO
	if err := msgpack.Unmarshal(b, &dto); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if dto.Schema != fixtureSchemaVersion {
		return nil, fmt.Errorf("decode fixture: schema %d unsupported (want %d)", dto.Schema, fixtureSchemaVersion)
	}
	return dtoToProgram(&dto), nil
}

// Save writes prog to path as msgpack, replacing any existing file
// atomically (write-to-temp-then-rename).
func Save(path string, prog *ir.Program) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save fixture %q: %w", path, err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), "fixture-*.tmp")
	if err != nil {
		return fmt.Errorf("save fixture %q: %w", path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(programToDTO(prog)); err != nil {
		f.Close()
		return fmt.Errorf("save fixture %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save fixture %q: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("save fixture %q: %w", path, err)
	}
	return nil
}

// Load reads and decodes a fixture previously written by Save.
func Load(path string) (*ir.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load fixture %q: %w", path, err)
	}
	defer f.Close()

	var dto ProgramDTO
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&dto); err != nil {
		return nil, fmt.Errorf("load fixture %q: %w", path, err)
	}
	if dto.Schema != fixtureSchemaVersion {
		return nil, fmt.Errorf("load fixture %q: schema %d unsupported (want %d)", path, dto.Schema, fixtureSchemaVersion)
	}
	return dtoToProgram(&dto), nil
}
