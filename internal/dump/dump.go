// Package dump archives computed digit streams as LZ4-compressed
// files. Digits are nibble-packed (two per byte) before compression;
// the stream is headed by the digit count so odd lengths round-trip.
package dump

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// ErrCorruptDump indicates a dump whose payload does not match its
// header.
var ErrCorruptDump = errors.New("corrupt digit dump")

// ErrInvalidDigit indicates an input value outside 0–9.
var ErrInvalidDigit = errors.New("digit out of range")

// headerSize is the uncompressed big-endian digit count prefix.
const headerSize = 8

// digitsPerByte is the nibble packing density.
const digitsPerByte = 2

// Write compresses digits (values 0–9) to w.
func Write(w io.Writer, digits []byte) error {
	packed, packErr := pack(digits)
	if packErr != nil {
		return packErr
	}

	zw := lz4.NewWriter(w)

	header := make([]byte, headerSize)
	binary.BigEndian.PutUint64(header, uint64(len(digits)))

	_, writeErr := zw.Write(header)
	if writeErr == nil {
		_, writeErr = zw.Write(packed)
	}

	if writeErr != nil {
		return fmt.Errorf("write digit dump: %w", writeErr)
	}

	closeErr := zw.Close()
	if closeErr != nil {
		return fmt.Errorf("flush digit dump: %w", closeErr)
	}

	return nil
}

// Read decompresses a dump produced by Write and returns the digit
// values.
func Read(r io.Reader) ([]byte, error) {
	zr := lz4.NewReader(r)

	header := make([]byte, headerSize)

	_, readErr := io.ReadFull(zr, header)
	if readErr != nil {
		return nil, fmt.Errorf("read dump header: %w", readErr)
	}

	count := binary.BigEndian.Uint64(header)

	packed, readErr := io.ReadAll(zr)
	if readErr != nil {
		return nil, fmt.Errorf("read dump payload: %w", readErr)
	}

	expected := (count + digitsPerByte - 1) / digitsPerByte
	if uint64(len(packed)) != expected {
		return nil, fmt.Errorf("%w: %d packed bytes for %d digits", ErrCorruptDump, len(packed), count)
	}

	return unpack(packed, int(count)), nil
}

// pack stores two digits per byte, high nibble first.
func pack(digits []byte) ([]byte, error) {
	packed := make([]byte, (len(digits)+digitsPerByte-1)/digitsPerByte)

	for i, d := range digits {
		if d > 9 {
			return nil, fmt.Errorf("%w: %d at offset %d", ErrInvalidDigit, d, i)
		}

		if i%digitsPerByte == 0 {
			packed[i/digitsPerByte] = d << 4
		} else {
			packed[i/digitsPerByte] |= d
		}
	}

	return packed, nil
}

func unpack(packed []byte, count int) []byte {
	digits := make([]byte, count)

	for i := range digits {
		b := packed[i/digitsPerByte]
		if i%digitsPerByte == 0 {
			digits[i] = b >> 4
		} else {
			digits[i] = b & 0x0f
		}
	}

	return digits
}
