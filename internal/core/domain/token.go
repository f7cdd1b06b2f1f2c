package domain

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Operation ID constants.
const (
	// OpIDPrefix is the prefix for operation IDs.
	OpIDPrefix = "sbop-"

	// OpIDBodyLength is the length of the lowercase ULID body.
	OpIDBodyLength = 26

	// OpIDLength is the total operation ID length (prefix + body).
	OpIDLength = 5 + OpIDBodyLength // sbop- + 26 = 31
)

// NewOpID generates a new operation ID using ULID.
// Format: sbop-{ulid_lowercase}, 31 characters total.
//
// An operation ID correlates an in-flight asynchronous operation with
// its completion marker. Uniqueness against concurrently live IDs is
// enforced one level up by the marker store's claim; the ULID keeps the
// collision probability negligible to begin with.
func NewOpID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternal.WithCause(err)
	}
	return OpIDPrefix + strings.ToLower(id.String()), nil
}

// ValidateOpIDFormat checks if a string has valid operation ID format.
// A valid operation ID has:
// - Prefix: sbop-
// - Body: 26 characters of Crockford Base32 (ULID)
// - Total length: 31 characters
func ValidateOpIDFormat(id string) bool {
	if len(id) != OpIDLength {
		return false
	}

	if !strings.HasPrefix(id, OpIDPrefix) {
		return false
	}

	// ParseStrict rejects characters outside the Crockford Base32
	// alphabet; plain Parse only checks the length.
	ulidPart := strings.ToUpper(id[len(OpIDPrefix):])
	_, err := ulid.ParseStrict(ulidPart)
	return err == nil
}

// ParseOpID validates an operation ID and returns its ULID body
// (without the prefix). Malformed IDs fail with ErrOpIDMalformed.
func ParseOpID(id string) (string, error) {
	if !ValidateOpIDFormat(id) {
		return "", ErrOpIDMalformed.WithDetails(id)
	}
	return id[len(OpIDPrefix):], nil
}
