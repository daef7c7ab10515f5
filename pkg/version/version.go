// Package version parses and orders release version identifiers.
//
// The accepted grammar is strict: N.N[.N][{a|b}N], where N is a run of
// ASCII digits. "1.0", "1.0.4", "1.0a1" and "1.0.4b2" are versions;
// "1", "2.7.2.2", "1.3.a4", "1.3pl1" and "1.3c4" are not. Strings outside
// the grammar are rejected, never coerced.
//
// Ordering compares (major, minor, patch) first. A pre-release sorts
// before the release it precedes, and alphas sort before betas:
//
//	0.4 == 0.4.0 < 0.4.1 < 0.5a1 < 0.5b3 < 0.5 < 0.9.6 < 1.0
package version

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/arthur-debert/jungle/pkg/errors"
)

// Pre-release tags. The byte values order alpha before beta.
const (
	Alpha byte = 'a'
	Beta  byte = 'b'
)

var grammar = regexp.MustCompile(`^([0-9]+)\.([0-9]+)(?:\.([0-9]+))?(?:([ab])([0-9]+))?$`)

// Version is an immutable, comparable version identifier.
// The zero value is 0.0.0.
type Version struct {
	major, minor, patch int
	tag                 byte // 0 when not a pre-release
	num                 int
}

// Parse parses s, failing with an INVALID_VERSION error if it is outside
// the grammar.
func Parse(s string) (Version, error) {
	m := grammar.FindStringSubmatch(s)
	if m == nil {
		return Version{}, errors.Newf(errors.ErrInvalidVersion, "invalid version number %q", s).
			WithDetail("input", s)
	}

	var v Version
	var err error
	if v.major, err = component(s, m[1]); err != nil {
		return Version{}, err
	}
	if v.minor, err = component(s, m[2]); err != nil {
		return Version{}, err
	}
	if m[3] != "" {
		if v.patch, err = component(s, m[3]); err != nil {
			return Version{}, err
		}
	}
	if m[4] != "" {
		v.tag = m[4][0]
		if v.num, err = component(s, m[5]); err != nil {
			return Version{}, err
		}
	}
	return v, nil
}

// component converts one numeric field; only overflow can fail here since
// the grammar already guarantees digits.
func component(input, digits string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrInvalidVersion, "invalid version number %q", input).
			WithDetail("input", input)
	}
	return n, nil
}

// MustParse is like Parse but panics on error. For tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Valid reports whether s parses as a version.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// New builds a release version.
func New(major, minor, patch int) Version {
	return Version{major: major, minor: minor, patch: patch}
}

// WithPrerelease returns a copy of v carrying the given pre-release tag.
// tag must be Alpha or Beta.
func (v Version) WithPrerelease(tag byte, num int) Version {
	if tag != Alpha && tag != Beta {
		panic(fmt.Sprintf("version: invalid pre-release tag %q", tag))
	}
	v.tag, v.num = tag, num
	return v
}

// IsPrerelease reports whether v carries an a/b tag.
func (v Version) IsPrerelease() bool { return v.tag != 0 }

// Prerelease returns the tag and number, ok is false for releases.
func (v Version) Prerelease() (tag byte, num int, ok bool) {
	return v.tag, v.num, v.tag != 0
}

// String renders the canonical form: major.minor, then .patch unless it is
// zero, then the pre-release suffix if any. Parse(v.String()) == v.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d", v.major, v.minor)
	if v.patch != 0 {
		s += fmt.Sprintf(".%d", v.patch)
	}
	if v.tag != 0 {
		s += fmt.Sprintf("%c%d", v.tag, v.num)
	}
	return s
}

// Compare returns -1, 0 or 1 as a is less than, equal to or greater than b.
func Compare(a, b Version) int {
	if c := cmpInt(a.major, b.major); c != 0 {
		return c
	}
	if c := cmpInt(a.minor, b.minor); c != 0 {
		return c
	}
	if c := cmpInt(a.patch, b.patch); c != 0 {
		return c
	}

	switch {
	case a.tag == 0 && b.tag == 0:
		return 0
	case a.tag == 0:
		return 1
	case b.tag == 0:
		return -1
	}
	if c := cmpInt(int(a.tag), int(b.tag)); c != 0 {
		return c
	}
	return cmpInt(a.num, b.num)
}

// Compare is the method form of Compare.
func (v Version) Compare(other Version) int { return Compare(v, other) }

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool { return Compare(v, other) < 0 }

// Equal reports whether v and other have the same rank. 0.4 equals 0.4.0.
func (v Version) Equal(other Version) bool { return Compare(v, other) == 0 }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
