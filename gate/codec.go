package gate

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// Tag names the concrete type behind a field tuple.
type Tag string

const (
	TagQuantumGate           Tag = "QuantumGate"
	TagParametricQuantumGate Tag = "ParametricQuantumGate"
)

// WireVersion is written at the head of every encoded tuple. Decoders reject
// versions they do not know instead of guessing at field layout.
const WireVersion = 1

// Fields is an ordered field tuple. Element types are fixed per tag:
//
//	QuantumGate:           string, []int, []int, []int, []float64, []uint8, [][]complex128 (nil when absent)
//	ParametricQuantumGate: string, []int, []int, []uint8
type Fields []any

// Serializable is implemented by both gate types.
type Serializable interface {
	Tag() Tag
	Fields() Fields
}

var (
	_ Serializable = QuantumGate{}
	_ Serializable = ParametricQuantumGate{}
)

func (QuantumGate) Tag() Tag { return TagQuantumGate }

func (g QuantumGate) Fields() Fields {
	var m any
	if g.unitary.Present() {
		m = g.unitary.Rows()
	}
	return Fields{g.name, g.TargetIndices(), g.ControlIndices(), g.ClassicalIndices(), g.Params(), g.PauliIDs(), m}
}

func (ParametricQuantumGate) Tag() Tag { return TagParametricQuantumGate }

func (g ParametricQuantumGate) Fields() Fields {
	return Fields{g.name, g.TargetIndices(), g.ControlIndices(), g.PauliIDs()}
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindInts
	kindFloats
	kindBytes
	kindMatrix
)

var schemas = map[Tag][]fieldKind{
	TagQuantumGate:           {kindString, kindInts, kindInts, kindInts, kindFloats, kindBytes, kindMatrix},
	TagParametricQuantumGate: {kindString, kindInts, kindInts, kindBytes},
}

func serr(op, format string, args ...any) *SerializationError {
	return &SerializationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// Reconstruct rebuilds a gate from its tag and field tuple, running the same
// validation as the constructors.
func Reconstruct(tag Tag, f Fields) (Serializable, error) {
	schema, ok := schemas[tag]
	if !ok {
		return nil, serr("reconstruct", "unknown tag %q", tag)
	}
	if len(f) != len(schema) {
		return nil, serr("reconstruct", "%s needs %d fields, got %d", tag, len(schema), len(f))
	}
	for i, k := range schema {
		if !fieldMatches(k, f[i]) {
			return nil, serr("reconstruct", "%s field %d has type %T", tag, i, f[i])
		}
	}

	var (
		s   Serializable
		err error
	)
	name := f[0].(string)
	switch tag {
	case TagQuantumGate:
		var rows [][]complex128
		if f[6] != nil {
			rows = f[6].([][]complex128)
		}
		s, err = New(name, f[1].([]int),
			WithControls(f[2].([]int)...),
			WithClassical(f[3].([]int)...),
			WithParams(f[4].([]float64)...),
			WithPauliIDs(f[5].([]uint8)...),
			WithUnitary(rows))
	case TagParametricQuantumGate:
		s, err = NewParametric(name, f[1].([]int),
			WithParametricControls(f[2].([]int)...),
			WithParametricPauliIDs(f[3].([]uint8)...))
	}
	if err != nil {
		return nil, &SerializationError{Op: "reconstruct", Reason: "invalid " + string(tag), Err: err}
	}
	return s, nil
}

func fieldMatches(k fieldKind, v any) bool {
	switch k {
	case kindString:
		_, ok := v.(string)
		return ok
	case kindInts:
		_, ok := v.([]int)
		return ok
	case kindFloats:
		_, ok := v.([]float64)
		return ok
	case kindBytes:
		_, ok := v.([]uint8)
		return ok
	case kindMatrix:
		if v == nil {
			return true
		}
		_, ok := v.([][]complex128)
		return ok
	}
	return false
}

// Marshal encodes s as a MessagePack array [version, tag, fields...].
func Marshal(s Serializable) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeTuple(msgpack.NewEncoder(&buf), s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes bytes produced by Marshal. Trailing bytes are an error.
func Unmarshal(b []byte) (Serializable, error) {
	r := bytes.NewReader(b)
	s, err := decodeTuple(msgpack.NewDecoder(r))
	if err != nil {
		return nil, err
	}
	if r.Len() > 0 {
		return nil, serr("decode", "%d trailing bytes", r.Len())
	}
	return s, nil
}

// EncodeMsgpack lets a QuantumGate sit inside larger msgpack documents.
func (g QuantumGate) EncodeMsgpack(enc *msgpack.Encoder) error { return encodeTuple(enc, g) }

func (g *QuantumGate) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := decodeTuple(dec)
	if err != nil {
		return err
	}
	qg, ok := s.(QuantumGate)
	if !ok {
		return serr("decode", "expected %s, got %s", TagQuantumGate, s.Tag())
	}
	*g = qg
	return nil
}

func (g ParametricQuantumGate) EncodeMsgpack(enc *msgpack.Encoder) error { return encodeTuple(enc, g) }

func (g *ParametricQuantumGate) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := decodeTuple(dec)
	if err != nil {
		return err
	}
	pg, ok := s.(ParametricQuantumGate)
	if !ok {
		return serr("decode", "expected %s, got %s", TagParametricQuantumGate, s.Tag())
	}
	*g = pg
	return nil
}

func encodeTuple(enc *msgpack.Encoder, s Serializable) error {
	tag := s.Tag()
	schema, ok := schemas[tag]
	if !ok {
		return serr("encode", "unknown tag %q", tag)
	}
	f := s.Fields()
	if len(f) != len(schema) {
		return serr("encode", "%s needs %d fields, got %d", tag, len(schema), len(f))
	}
	if err := enc.EncodeArrayLen(2 + len(f)); err != nil {
		return wrapIO("encode", err)
	}
	if err := enc.EncodeInt(WireVersion); err != nil {
		return wrapIO("encode", err)
	}
	if err := enc.EncodeString(string(tag)); err != nil {
		return wrapIO("encode", err)
	}
	for i, k := range schema {
		if !fieldMatches(k, f[i]) {
			return serr("encode", "%s field %d has type %T", tag, i, f[i])
		}
		if err := encodeField(enc, k, f[i]); err != nil {
			return wrapIO("encode", err)
		}
	}
	return nil
}

func encodeField(enc *msgpack.Encoder, k fieldKind, v any) error {
	switch k {
	case kindString:
		return enc.EncodeString(v.(string))
	case kindInts:
		xs := v.([]int)
		if err := enc.EncodeArrayLen(len(xs)); err != nil {
			return err
		}
		for _, x := range xs {
			if err := enc.EncodeInt(int64(x)); err != nil {
				return err
			}
		}
	case kindFloats:
		xs := v.([]float64)
		if err := enc.EncodeArrayLen(len(xs)); err != nil {
			return err
		}
		for _, x := range xs {
			if err := enc.EncodeFloat64(x); err != nil {
				return err
			}
		}
	case kindBytes:
		xs := v.([]uint8)
		if err := enc.EncodeArrayLen(len(xs)); err != nil {
			return err
		}
		for _, x := range xs {
			if err := enc.EncodeUint8(x); err != nil {
				return err
			}
		}
	case kindMatrix:
		if v == nil {
			return enc.EncodeNil()
		}
		rows := v.([][]complex128)
		if err := enc.EncodeArrayLen(len(rows)); err != nil {
			return err
		}
		for _, row := range rows {
			if err := enc.EncodeArrayLen(len(row)); err != nil {
				return err
			}
			// Each entry is a [re, im] pair of float64 so no precision is lost.
			for _, c := range row {
				if err := enc.EncodeArrayLen(2); err != nil {
					return err
				}
				if err := enc.EncodeFloat64(real(c)); err != nil {
					return err
				}
				if err := enc.EncodeFloat64(imag(c)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func decodeTuple(dec *msgpack.Decoder) (Serializable, error) {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, wrapIO("decode", err)
	}
	if n < 2 {
		return nil, serr("decode", "tuple has %d elements", n)
	}
	version, err := dec.DecodeInt()
	if err != nil {
		return nil, wrapIO("decode", err)
	}
	if version != WireVersion {
		return nil, serr("decode", "unsupported wire version %d", version)
	}
	tagStr, err := dec.DecodeString()
	if err != nil {
		return nil, wrapIO("decode", err)
	}
	tag := Tag(tagStr)
	schema, ok := schemas[tag]
	if !ok {
		return nil, serr("decode", "unknown tag %q", tag)
	}
	if n-2 != len(schema) {
		return nil, serr("decode", "%s needs %d fields, got %d", tag, len(schema), n-2)
	}
	f := make(Fields, len(schema))
	for i, k := range schema {
		v, err := decodeField(dec, k)
		if err != nil {
			return nil, wrapIO("decode", fmt.Errorf("%s field %d: %w", tag, i, err))
		}
		f[i] = v
	}
	return Reconstruct(tag, f)
}

func decodeArrayLen(dec *msgpack.Decoder) (int, error) {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("unexpected nil array")
	}
	return n, nil
}

func decodeField(dec *msgpack.Decoder, k fieldKind) (any, error) {
	switch k {
	case kindString:
		return dec.DecodeString()
	case kindInts:
		n, err := decodeArrayLen(dec)
		if err != nil {
			return nil, err
		}
		xs := make([]int, n)
		for i := range xs {
			if xs[i], err = dec.DecodeInt(); err != nil {
				return nil, err
			}
		}
		return xs, nil
	case kindFloats:
		n, err := decodeArrayLen(dec)
		if err != nil {
			return nil, err
		}
		xs := make([]float64, n)
		for i := range xs {
			if xs[i], err = dec.DecodeFloat64(); err != nil {
				return nil, err
			}
		}
		return xs, nil
	case kindBytes:
		n, err := decodeArrayLen(dec)
		if err != nil {
			return nil, err
		}
		xs := make([]uint8, n)
		for i := range xs {
			if xs[i], err = dec.DecodeUint8(); err != nil {
				return nil, err
			}
		}
		return xs, nil
	case kindMatrix:
		code, err := dec.PeekCode()
		if err != nil {
			return nil, err
		}
		if code == msgpcode.Nil {
			return nil, dec.DecodeNil()
		}
		n, err := decodeArrayLen(dec)
		if err != nil {
			return nil, err
		}
		rows := make([][]complex128, n)
		for i := range rows {
			m, err := decodeArrayLen(dec)
			if err != nil {
				return nil, err
			}
			rows[i] = make([]complex128, m)
			for j := range rows[i] {
				pair, err := decodeArrayLen(dec)
				if err != nil {
					return nil, err
				}
				if pair != 2 {
					return nil, fmt.Errorf("complex entry has %d parts", pair)
				}
				re, err := dec.DecodeFloat64()
				if err != nil {
					return nil, err
				}
				im, err := dec.DecodeFloat64()
				if err != nil {
					return nil, err
				}
				rows[i][j] = complex(re, im)
			}
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unknown field kind %d", k)
}

func wrapIO(op string, err error) error {
	var se *SerializationError
	if errors.As(err, &se) {
		return err
	}
	return &SerializationError{Op: op, Reason: "malformed msgpack", Err: err}
}
