// FILE: lixenwraith/ulog/level.go
package ulog

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// LogLevel identifies a named level. It is the djb2-xor hash of the level name, so any
// string mints a level and independently built packages agree on its value.
type LogLevel uint32

// hashSeed is the djb2 starting value, also the hash of the empty name
const hashSeed LogLevel = 5381

// Base levels, precomputed hashes of their names (pinned by TestBaseLevelConstants)
const (
	LevelFatal     LogLevel = 0x0C3C873B // "FATAL"
	LevelError     LogLevel = 0x0C10199D // "ERROR"
	LevelException LogLevel = 0x71EF29F2 // "EXCEPTION"
	LevelWarning   LogLevel = 0xBD00E24F // "WARNING"
	LevelMsg       LogLevel = 0x0B87CA5C // "MSG"
	LevelDtor      LogLevel = 0x7C7F53A8 // "DTOR"
)

// Hash maps a level name to its LogLevel: h = h*33 ^ b over the name bytes, 32-bit wrap
func Hash(name string) LogLevel {
	h := hashSeed
	for i := 0; i < len(name); i++ {
		h = h*33 ^ LogLevel(name[i])
	}
	return h
}

// String returns the base level name or a hex rendering for minted levels
func (l LogLevel) String() string {
	switch l {
	case LevelFatal:
		return "FATAL"
	case LevelError:
		return "ERROR"
	case LevelException:
		return "EXCEPTION"
	case LevelWarning:
		return "WARNING"
	case LevelMsg:
		return "MSG"
	case LevelDtor:
		return "DTOR"
	default:
		return fmt.Sprintf("LEVEL(0x%08X)", uint32(l))
	}
}

// LevelSet is an unordered set of levels
type LevelSet map[LogLevel]struct{}

// NewLevelSet builds a set from level values
func NewLevelSet(levels ...LogLevel) LevelSet {
	s := make(LevelSet, len(levels))
	for _, l := range levels {
		s[l] = struct{}{}
	}
	return s
}

// Levels builds a set by hashing level names
func Levels(names ...string) LevelSet {
	s := make(LevelSet, len(names))
	for _, n := range names {
		s[Hash(n)] = struct{}{}
	}
	return s
}

// Contains reports membership
func (s LevelSet) Contains(l LogLevel) bool {
	_, ok := s[l]
	return ok
}

// Slice returns the members in ascending numeric order
func (s LevelSet) Slice() []LogLevel {
	out := make([]LogLevel, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy
func (s LevelSet) Clone() LevelSet {
	c := make(LevelSet, len(s))
	for l := range s {
		c[l] = struct{}{}
	}
	return c
}

// defaultLevels is the set enabled on a new logger
func defaultLevels() LevelSet {
	return NewLevelSet(LevelFatal, LevelException, LevelError, LevelWarning, LevelMsg)
}

// ParseLevels converts a comma separated list of level names to a set.
// "default" expands to the set enabled on a new logger and "none" adds nothing.
func ParseLevels(s string) (LevelSet, error) {
	set := NewLevelSet()
	for _, name := range splitList(s) {
		switch strings.ToLower(name) {
		case "default":
			for l := range defaultLevels() {
				set[l] = struct{}{}
			}
			continue
		case "none":
			continue
		}
		if strings.IndexFunc(name, invalidLevelRune) >= 0 {
			return nil, fmtErrorf("invalid level name: '%s'", name)
		}
		set[Hash(name)] = struct{}{}
	}
	return set, nil
}

func invalidLevelRune(r rune) bool {
	return unicode.IsSpace(r) || !unicode.IsPrint(r) || r == '='
}
