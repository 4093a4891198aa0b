package carquet

import "github.com/google/uuid"

// normalizeUUIDValues accepts either raw 16-byte values or their canonical
// string form (e.g. "A65B576D-9299-4769-9D93-04BE0583F027") for a column
// whose logical type is UUID, parsing the latter into its 16-byte binary
// representation before it is buffered. UUID is a FIXED_LEN_BYTE_ARRAY(16)
// logical type annotation.
func normalizeUUIDValues(values interface{}) (interface{}, error) {
	v, ok := values.([][]byte)
	if !ok {
		return values, nil
	}
	for i, b := range v {
		if len(b) == 16 {
			continue
		}
		u, err := uuid.ParseBytes(b)
		if err != nil {
			return values, err
		}
		parsed := u // copy, u[:] would alias a local that outlives this loop iteration
		v[i] = append([]byte(nil), parsed[:]...)
	}
	return v, nil
}
