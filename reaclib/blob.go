// Package reaclib decodes the embedded REACLIB binary blob format (spec
// §6): a contiguous array of fixed-width, unpadded records. Loading the
// blob itself is an input-format concern, not an algorithm - this package
// only decodes records and resolves species names against the process-wide
// species table; it never interprets rates (that is package reaction's
// job).
package reaclib

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/tboudreaux/GridFire-sub000/gferrors"
	"github.com/tboudreaux/GridFire-sub000/reaction"
	"github.com/tboudreaux/GridFire-sub000/species"
)

// recordSize is the fixed on-disk size of one REACLIB record, per spec §6:
//
//	int32 chapter                  4
//	float64 q_value_MeV            8
//	float64 coeffs[7]              56
//	uint8 reverse_flag             1
//	char label[8]                  8
//	char pe_name[64]                64
//	char reactants_str[128]        128
//	char products_str[128]         128
const recordSize = 4 + 8 + 7*8 + 1 + 8 + 64 + 128 + 128

// Decode parses a REACLIB blob into raw Reaction values. Record count is
// blob length / recordSize; any remainder is a malformed-file
// DataIntegrity error. Species names referenced by a record that are not
// present in the process-wide table are a fatal DataIntegrity error (spec
// §4.7: "Unknown species name during deserialisation").
func Decode(blob []byte) ([]*reaction.Reaction, error) {
	if len(blob)%recordSize != 0 {
		return nil, gferrors.New(gferrors.DataIntegrity, "reaclib blob: length %d is not a multiple of record size %d", len(blob), recordSize)
	}
	n := len(blob) / recordSize
	out := make([]*reaction.Reaction, 0, n)

	for i := 0; i < n; i++ {
		rec := blob[i*recordSize : (i+1)*recordSize]
		r, err := decodeRecord(rec, i)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func decodeRecord(rec []byte, index int) (*reaction.Reaction, error) {
	buf := bytes.NewReader(rec)

	var chapter int32
	if err := binary.Read(buf, binary.LittleEndian, &chapter); err != nil {
		return nil, gferrors.Wrap(gferrors.DataIntegrity, err, "reaclib record %d: chapter", index)
	}
	var qValue float64
	if err := binary.Read(buf, binary.LittleEndian, &qValue); err != nil {
		return nil, gferrors.Wrap(gferrors.DataIntegrity, err, "reaclib record %d: q_value", index)
	}
	var coeffs [7]float64
	if err := binary.Read(buf, binary.LittleEndian, &coeffs); err != nil {
		return nil, gferrors.Wrap(gferrors.DataIntegrity, err, "reaclib record %d: coeffs", index)
	}
	var reverseFlag uint8
	if err := binary.Read(buf, binary.LittleEndian, &reverseFlag); err != nil {
		return nil, gferrors.Wrap(gferrors.DataIntegrity, err, "reaclib record %d: reverse_flag", index)
	}

	label := make([]byte, 8)
	peName := make([]byte, 64)
	reactantsStr := make([]byte, 128)
	productsStr := make([]byte, 128)
	for _, field := range []struct {
		name string
		buf  []byte
	}{
		{"label", label},
		{"pe_name", peName},
		{"reactants", reactantsStr},
		{"products", productsStr},
	} {
		if _, err := buf.Read(field.buf); err != nil {
			return nil, gferrors.Wrap(gferrors.DataIntegrity, err, "reaclib record %d: %s", index, field.name)
		}
	}

	reactantNames := strings.Fields(trimNUL(reactantsStr))
	productNames := strings.Fields(trimNUL(productsStr))

	reactants, err := resolveAll(reactantNames)
	if err != nil {
		return nil, gferrors.Wrap(gferrors.DataIntegrity, err, "reaclib record %d", index)
	}
	products, err := resolveAll(productNames)
	if err != nil {
		return nil, gferrors.Wrap(gferrors.DataIntegrity, err, "reaclib record %d", index)
	}

	id := fmt.Sprintf("%s_%s_%d", trimNUL(label), trimNUL(peName), index)

	return reaction.New(
		id,
		trimNUL(peName),
		reaction.Chapter(chapter),
		reactants,
		products,
		qValue,
		trimNUL(label),
		reaction.R7(coeffs),
		reverseFlag != 0,
	)
}

func trimNUL(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimSpace(string(b))
}

func resolveAll(names []string) ([]species.Species, error) {
	out := make([]species.Species, 0, len(names))
	for _, n := range names {
		s, ok := species.Lookup(n)
		if !ok {
			return nil, gferrors.New(gferrors.DataIntegrity, "unknown species name %q", n)
		}
		out = append(out, s)
	}
	return out, nil
}
