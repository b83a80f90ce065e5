package errs

// Status is the stable, small integer status code the §6 ABI surface
// returns from every fallible call, mirroring ElucidatorStatus. OK is
// always zero; every other Kind maps to exactly one non-zero Status, and
// the mapping never changes once assigned (ABI stability).
type Status int32

const (
	StatusOK Status = iota
	StatusUnexpectedChar
	StatusUnexpectedEof
	StatusInvalidIdent
	StatusUnknownDtype
	StatusStringAsArray
	StatusZeroOrNegativeArrayLen
	StatusDuplicateMember
	StatusTrailingGarbage
	StatusDesignationMismatch
	StatusDuplicateDesignation
	StatusUnknownDesignation
	StatusUnknownSession
	StatusInvalidBoundingBox
	StatusInvalidEpsilon
	StatusInvalidBlobLength
	StatusTruncatedBlob
	StatusTrailingBytes
	StatusPoisonedState
	StatusOutOfMemory
	statusUnknown // internal sentinel StatusFor returns for errors with no mapped Kind
)

var kindToStatus = map[Kind]Status{
	UnexpectedChar:         StatusUnexpectedChar,
	UnexpectedEof:          StatusUnexpectedEof,
	InvalidIdent:           StatusInvalidIdent,
	UnknownDtype:           StatusUnknownDtype,
	StringAsArray:          StatusStringAsArray,
	ZeroOrNegativeArrayLen: StatusZeroOrNegativeArrayLen,
	DuplicateMember:        StatusDuplicateMember,
	TrailingGarbage:        StatusTrailingGarbage,
	DesignationMismatch:    StatusDesignationMismatch,
	DuplicateDesignation:   StatusDuplicateDesignation,
	UnknownDesignation:     StatusUnknownDesignation,
	UnknownSession:         StatusUnknownSession,
	InvalidBoundingBox:     StatusInvalidBoundingBox,
	InvalidEpsilon:         StatusInvalidEpsilon,
	InvalidBlobLength:      StatusInvalidBlobLength,
	TruncatedBlob:          StatusTruncatedBlob,
	TrailingBytes:          StatusTrailingBytes,
	PoisonedState:          StatusPoisonedState,
	OutOfMemory:            StatusOutOfMemory,
}

// StatusFor maps an error (kind) to its ABI status code. Errors that are
// not *Error (and don't wrap one), or whose Kind has no mapping, map to the
// internal statusUnknown sentinel.
func StatusFor(err error) Status {
	if err == nil {
		return StatusOK
	}
	kind, ok := KindOf(err)
	if !ok {
		return statusUnknown
	}
	if st, ok := kindToStatus[kind]; ok {
		return st
	}
	return statusUnknown
}

// String returns a human-readable status name, used by debug printers.
func (s Status) String() string {
	for k, v := range kindToStatus {
		if v == s {
			return string(k)
		}
	}
	if s == StatusOK {
		return "OK"
	}
	return "Unknown"
}
