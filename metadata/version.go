package metadata

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrIncompatibleVersion = errors.New("incompatible metadata version")

// Version holds the load-bearing part of an "A.B.C.D" version string.
type Version struct {
	Major int
	Minor int
}

var DefaultVersion = Version{Major: 1, Minor: 10}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 4 {
		return Version{}, fmt.Errorf("%w: %q", ErrIncompatibleVersion, s)
	}
	// Build and revision fields are not interpreted.
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrIncompatibleVersion, s)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrIncompatibleVersion, s)
	}
	return Version{Major: major, Minor: minor}, nil
}

// CheckVersion validates the document's Version field against expected.
func CheckVersion(doc *Node, expected Version) error {
	vn := doc.Find("Version")
	if !vn.IsString() {
		return fmt.Errorf("%w: no Version field", ErrIncompatibleVersion)
	}
	v, err := ParseVersion(vn.Str())
	if err != nil {
		return err
	}
	if v.Major != expected.Major || v.Minor > expected.Minor {
		return fmt.Errorf("%w: %s (expected %s)", ErrIncompatibleVersion, vn.Str(), expected)
	}
	return nil
}
