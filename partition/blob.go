package partition

import (
	"bytes"
	"encoding/binary"

	"github.com/tboudreaux/GridFire-sub000/gferrors"
)

// recordSize is the fixed on-disk size of one Rauscher-Thielemann record
// (spec §6): uint32 z, uint32 a, float64 ground_state_spin, float64
// partition_function (unused - retained for round-trip), float64
// normalized_g[24].
const recordSize = 4 + 4 + 8 + 8 + 24*8

// DecodeBlob parses a contiguous Rauscher-Thielemann blob into
// IsotopeRecords.
func DecodeBlob(blob []byte) ([]IsotopeRecord, error) {
	if len(blob)%recordSize != 0 {
		return nil, gferrors.New(gferrors.DataIntegrity, "rauscher-thielemann blob: length %d is not a multiple of record size %d", len(blob), recordSize)
	}
	n := len(blob) / recordSize
	out := make([]IsotopeRecord, 0, n)
	for i := 0; i < n; i++ {
		rec, err := decodeRecord(blob[i*recordSize:(i+1)*recordSize], i)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeRecord(raw []byte, index int) (IsotopeRecord, error) {
	buf := bytes.NewReader(raw)
	var z, a uint32
	var groundStateSpin, partitionFunctionUnused float64
	var g [24]float64

	for _, field := range []struct {
		name string
		dst  interface{}
	}{
		{"z", &z},
		{"a", &a},
		{"ground_state_spin", &groundStateSpin},
		{"partition_function", &partitionFunctionUnused},
		{"normalized_g", &g},
	} {
		if err := binary.Read(buf, binary.LittleEndian, field.dst); err != nil {
			return IsotopeRecord{}, gferrors.Wrap(gferrors.DataIntegrity, err, "rauscher-thielemann record %d: %s", index, field.name)
		}
	}

	return IsotopeRecord{
		Z:               int(z),
		A:               int(a),
		GroundStateSpin: groundStateSpin,
		NormalizedG:     g,
	}, nil
}
