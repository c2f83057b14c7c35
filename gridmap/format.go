package gridmap

import (
	"errors"
	"fmt"
)

// Magic identifies a gridmap file.
const Magic = "VMG1"

// FormatVersion is the payload version this package reads and writes.
const FormatVersion = 1

// Pixel codes of the map grid.
const (
	PixelOutside byte = 0
	PixelFloor   byte = 1
	PixelWall    byte = 2
	PixelCarpet  byte = 3
	// PixelRoomBase plus a room id marks a room pixel. Room ids start
	// at 1, so the bare base value is not a valid code.
	PixelRoomBase byte = 16
)

// Section type codes.
const (
	sectionCharger       byte = 1
	sectionVacuum        byte = 2
	sectionPath          byte = 3
	sectionRooms         byte = 4
	sectionZones         byte = 5
	sectionWalls         byte = 6
	sectionNoGoAreas     byte = 7
	sectionObstacles     byte = 8
	sectionNoMopAreas    byte = 9
	sectionGoto          byte = 10
	sectionPredictedPath byte = 11
	sectionCleanedRooms  byte = 12
)

// Parse error codes.
const (
	ErrCodeBadMagic   = "BAD_MAGIC"
	ErrCodeBadVersion = "BAD_VERSION"
	ErrCodeTruncated  = "TRUNCATED"
	ErrCodeBadSection = "BAD_SECTION"
	ErrCodeBadPayload = "BAD_PAYLOAD"
)

// ParseError describes a malformed gridmap payload. Offset is the
// byte position in the decompressed payload where parsing failed, or
// -1 when the failure precedes decompression.
type ParseError struct {
	Code    string
	Message string
	Offset  int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", e.Code, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsBadMagic reports whether err is a magic-mismatch error.
// Uses errors.As to handle wrapped errors.
func IsBadMagic(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Code == ErrCodeBadMagic
}

// IsTruncated reports whether err is a short-payload error.
// Uses errors.As to handle wrapped errors.
func IsTruncated(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Code == ErrCodeTruncated
}
