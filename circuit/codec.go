package circuit

import (
	"bytes"
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"qtermgate/gate"
)

// fileVersion heads every saved circuit.
const fileVersion = 1

// MarshalBinary encodes [version, qubits, cbits, [gate tuples...]].
func (c *Circuit) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.EncodeArrayLen(4); err != nil {
		return nil, err
	}
	if err := enc.EncodeInt(fileVersion); err != nil {
		return nil, err
	}
	if err := enc.EncodeInt(int64(c.qubitCount)); err != nil {
		return nil, err
	}
	if err := enc.EncodeInt(int64(c.cbitCount)); err != nil {
		return nil, err
	}
	if err := enc.EncodeArrayLen(len(c.gates)); err != nil {
		return nil, err
	}
	for _, g := range c.gates {
		if err := enc.Encode(g); err != nil {
			return nil, fmt.Errorf("encode %s: %w", g.Name(), err)
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary replaces c with the decoded circuit. Every gate is validated
// again and must fit the decoded registers.
func (c *Circuit) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)
	dec := msgpack.NewDecoder(r)
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return fmt.Errorf("decode circuit: %w: %w", gate.ErrSerialization, err)
	}
	if n != 4 {
		return fmt.Errorf("decode circuit: %w: header has %d elements", gate.ErrSerialization, n)
	}
	version, err := dec.DecodeInt()
	if err != nil {
		return fmt.Errorf("decode circuit: %w: %w", gate.ErrSerialization, err)
	}
	if version != fileVersion {
		return fmt.Errorf("decode circuit: %w: unsupported version %d", gate.ErrSerialization, version)
	}
	qubits, err := dec.DecodeInt()
	if err != nil {
		return fmt.Errorf("decode circuit: %w: %w", gate.ErrSerialization, err)
	}
	cbits, err := dec.DecodeInt()
	if err != nil {
		return fmt.Errorf("decode circuit: %w: %w", gate.ErrSerialization, err)
	}
	out, err := NewWithCbits(qubits, cbits)
	if err != nil {
		return fmt.Errorf("decode circuit: %w: %w", gate.ErrSerialization, err)
	}
	count, err := dec.DecodeArrayLen()
	if err != nil {
		return fmt.Errorf("decode circuit: %w: %w", gate.ErrSerialization, err)
	}

	for i := 0; i < count; i++ {
		var g gate.QuantumGate
		if err := dec.Decode(&g); err != nil {
			return fmt.Errorf("decode gate %d: %w", i, err)
		}
		if err := out.Add(g); err != nil {
			return fmt.Errorf("decode gate %d: %w", i, err)
		}
	}
	if r.Len() > 0 {
		return fmt.Errorf("decode circuit: %w: %d trailing bytes", gate.ErrSerialization, r.Len())
	}
	*c = *out
	return nil
}

// Save writes the circuit to path.
func (c *Circuit) Save(path string) error {
	b, err := c.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Load reads a circuit saved with Save.
func Load(path string) (*Circuit, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &Circuit{}
	if err := c.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}
