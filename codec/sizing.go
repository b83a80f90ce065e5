package codec

import "github.com/Neumenon/elucidator/spec"

const lengthPrefixSize = 8 // bytes in the u64 length prefix for String/Dynamic

// MinBlobLength returns the minimum valid blob length for s: the sum, over
// members, of scalar static size, n*scalarSize for fixed arrays, and the
// 8-byte length prefix for each dynamic component (array or string).
func MinBlobLength(s *spec.Specification) int {
	total := 0
	for _, m := range s.Members {
		total += memberMinSize(m)
	}
	return total
}

func memberMinSize(m spec.MemberSpec) int {
	scalarSize := m.DType.StaticSize()
	switch m.Array.Kind {
	case spec.Fixed:
		if m.DType == spec.StringType {
			// unreachable: string arrays are rejected at parse/construct time.
			return 0
		}
		return scalarSize * m.Array.Len
	case spec.Dynamic:
		return lengthPrefixSize
	default: // Scalar
		if m.DType == spec.StringType {
			return lengthPrefixSize
		}
		return scalarSize
	}
}

// ValidBlobLength reports whether blobLen is at least MinBlobLength(s). It
// does not read the blob or its length prefixes, so it does not reject a
// length above the minimum that no encoding under s has (for a
// specification with no dynamic component, any length other than the
// minimum itself); Decode reports such a blob as TruncatedBlob or
// TrailingBytes.
func ValidBlobLength(s *spec.Specification, blobLen int) bool {
	return blobLen >= MinBlobLength(s)
}
