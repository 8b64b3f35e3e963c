// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// MaxVarStringLength is the sanity cap applied when reading a variable
// length string off the wire.
const MaxVarStringLength = 1024 * 1024

var ErrEOF = errors.New("got EOF, can not get the next byte")

// Serializable is anything that can write itself to, and restore itself
// from, the canonical wire encoding.
type Serializable interface {
	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error
}

func WriteUint8(w io.Writer, val uint8) error {
	_, err := w.Write([]byte{val})
	return err
}

func WriteUint16(w io.Writer, val uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

func WriteUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

func WriteUint64(w io.Writer, val uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

func ReadUint8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func ReadUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// WriteVarUint writes val in the compact variable length form: values
// below 0xfd as a single byte, larger values behind a 0xfd/0xfe/0xff
// discriminant.
func WriteVarUint(w io.Writer, val uint64) error {
	switch {
	case val < 0xfd:
		return WriteUint8(w, uint8(val))
	case val <= math.MaxUint16:
		if err := WriteUint8(w, 0xfd); err != nil {
			return err
		}
		return WriteUint16(w, uint16(val))
	case val <= math.MaxUint32:
		if err := WriteUint8(w, 0xfe); err != nil {
			return err
		}
		return WriteUint32(w, uint32(val))
	default:
		if err := WriteUint8(w, 0xff); err != nil {
			return err
		}
		return WriteUint64(w, val)
	}
}

// ReadVarUint reads a compact variable length integer.  A non-zero max
// rejects values above it, a zero max accepts the full uint64 range.
func ReadVarUint(r io.Reader, max uint64) (uint64, error) {
	if max == 0 {
		max = math.MaxUint64
	}

	first, err := ReadUint8(r)
	if err != nil {
		return 0, err
	}

	var value uint64
	switch first {
	case 0xfd:
		v, err := ReadUint16(r)
		if err != nil {
			return 0, err
		}
		value = uint64(v)
	case 0xfe:
		v, err := ReadUint32(r)
		if err != nil {
			return 0, err
		}
		value = uint64(v)
	case 0xff:
		v, err := ReadUint64(r)
		if err != nil {
			return 0, err
		}
		value = v
	default:
		value = uint64(first)
	}

	if value > max {
		return 0, fmt.Errorf("ReadVarUint value %d out of range %d", value, max)
	}
	return value, nil
}

func WriteVarBytes(w io.Writer, bytes []byte) error {
	if err := WriteVarUint(w, uint64(len(bytes))); err != nil {
		return err
	}
	_, err := w.Write(bytes)
	return err
}

// ReadVarBytes reads a variable length byte slice, rejecting lengths
// above maxSize.  The name only decorates the error message.
func ReadVarBytes(r io.Reader, maxSize uint32, name string) ([]byte, error) {
	length, err := ReadVarUint(r, 0)
	if err != nil {
		return nil, err
	}
	if length > uint64(maxSize) {
		return nil, fmt.Errorf("%s length %d exceeds the max allowed %d",
			name, length, maxSize)
	}
	return ReadBytes(r, length)
}

func WriteVarString(w io.Writer, val string) error {
	return WriteVarBytes(w, []byte(val))
}

func ReadVarString(r io.Reader) (string, error) {
	val, err := ReadVarBytes(r, MaxVarStringLength, "string")
	return string(val), err
}

func WriteBytes(w io.Writer, val []byte) error {
	_, err := w.Write(val)
	return err
}

func ReadBytes(r io.Reader, length uint64) ([]byte, error) {
	bytes := make([]byte, length)
	if _, err := io.ReadFull(r, bytes); err != nil {
		return nil, err
	}
	return bytes, nil
}

// WriteElement writes one element in its little endian binary form.
// Serializable values write themselves.
func WriteElement(w io.Writer, element interface{}) error {
	switch e := element.(type) {
	case Serializable:
		return e.Serialize(w)
	case uint8:
		return WriteUint8(w, e)
	case uint16:
		return WriteUint16(w, e)
	case uint32:
		return WriteUint32(w, e)
	case uint64:
		return WriteUint64(w, e)
	case int64:
		return WriteUint64(w, uint64(e))
	case bool:
		if e {
			return WriteUint8(w, 1)
		}
		return WriteUint8(w, 0)
	case []byte:
		return WriteVarBytes(w, e)
	case string:
		return WriteVarString(w, e)
	default:
		return binary.Write(w, binary.LittleEndian, element)
	}
}

func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		if err := WriteElement(w, element); err != nil {
			return err
		}
	}
	return nil
}

// ReadElement reads one element into the pointed-to value, mirroring
// WriteElement.
func ReadElement(r io.Reader, element interface{}) error {
	switch e := element.(type) {
	case Serializable:
		return e.Deserialize(r)
	case *uint8:
		v, err := ReadUint8(r)
		if err != nil {
			return err
		}
		*e = v
	case *uint16:
		v, err := ReadUint16(r)
		if err != nil {
			return err
		}
		*e = v
	case *uint32:
		v, err := ReadUint32(r)
		if err != nil {
			return err
		}
		*e = v
	case *uint64:
		v, err := ReadUint64(r)
		if err != nil {
			return err
		}
		*e = v
	case *int64:
		v, err := ReadUint64(r)
		if err != nil {
			return err
		}
		*e = int64(v)
	case *bool:
		v, err := ReadUint8(r)
		if err != nil {
			return err
		}
		*e = v != 0
	case *[]byte:
		v, err := ReadVarBytes(r, math.MaxUint32, "bytes")
		if err != nil {
			return err
		}
		*e = v
	case *string:
		v, err := ReadVarString(r)
		if err != nil {
			return err
		}
		*e = v
	default:
		return binary.Read(r, binary.LittleEndian, element)
	}
	return nil
}

func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		if err := ReadElement(r, element); err != nil {
			return err
		}
	}
	return nil
}
