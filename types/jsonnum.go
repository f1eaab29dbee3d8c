package types

import (
	"fmt"
	"strconv"
)

func marshalUint32(v uint32) ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(v), 10)), nil
}

func unmarshalUint32(data []byte) (uint32, error) {
	v, err := strconv.ParseUint(string(data), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("types: decode uint32 color: %w", err)
	}
	return uint32(v), nil
}
