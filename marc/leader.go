package marc

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidLeader is returned for leaders that are too short or carry
// non-numeric lengths.
var ErrInvalidLeader = errors.New("invalid leader")

// LeaderLength is the fixed size of a MARC21 leader.
const LeaderLength = 24

// Leader contains the interesting positions of an authority leader, e.g.
// "00774cz  a2200253n  4500".
type Leader struct {
	Length      int  // 00-04
	Status      byte // 05
	Type        byte // 06, always 'z' for authority records
	Encoding    byte // 09, 'a' is UCS/Unicode
	DataAddress int  // 12-16
	Complete    bool // 17, 'n'
}

var statusText = map[byte]string{
	'a': "Increase in encoding level",
	'c': "Corrected or revised",
	'd': "Deleted",
	'n': "New",
	'o': "Obsolete",
	's': "Deleted; heading split into two or more headings",
	'x': "Deleted; heading replaced by another heading",
}

// ParseLeader parses a raw leader string.
func ParseLeader(s string) (Leader, error) {
	if len(s) < LeaderLength {
		return Leader{}, ErrInvalidLeader
	}
	length, err := strconv.Atoi(strings.TrimSpace(s[0:5]))
	if err != nil {
		return Leader{}, ErrInvalidLeader
	}
	address, err := strconv.Atoi(strings.TrimSpace(s[12:17]))
	if err != nil {
		return Leader{}, ErrInvalidLeader
	}
	return Leader{
		Length:      length,
		Status:      s[5],
		Type:        s[6],
		Encoding:    s[9],
		DataAddress: address,
		Complete:    s[17] == 'n',
	}, nil
}

// IsAuthority reports whether the leader marks an authority record.
func (l Leader) IsAuthority() bool {
	return l.Type == 'z'
}

// IsUnicode reports UCS/Unicode character coding.
func (l Leader) IsUnicode() bool {
	return l.Encoding == 'a'
}

// IsDeleted is true for any of the deletion statuses.
func (l Leader) IsDeleted() bool {
	switch l.Status {
	case 'd', 's', 'x':
		return true
	}
	return false
}

// StatusText describes the record status, or returns the empty string.
func (l Leader) StatusText() string {
	return statusText[l.Status]
}
