// Package types provides type definitions for structured data used throughout the talent-intel system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Seniority represents a career level on a total ordinal scale.
type Seniority string

// Seniority levels, ordered from most junior to most senior.
const (
	SeniorityUnknown   Seniority = ""
	SeniorityJunior    Seniority = "junior"
	SeniorityMid       Seniority = "mid"
	SenioritySenior    Seniority = "senior"
	SeniorityLead      Seniority = "lead"
	SeniorityManager   Seniority = "manager"
	SeniorityDirector  Seniority = "director"
	SeniorityExecutive Seniority = "executive"
)

// seniorityOrdinals maps each level to its position on the scale.
var seniorityOrdinals = map[Seniority]int{
	SeniorityJunior:    0,
	SeniorityMid:       1,
	SenioritySenior:    2,
	SeniorityLead:      3,
	SeniorityManager:   4,
	SeniorityDirector:  5,
	SeniorityExecutive: 6,
}

// SeniorityScaleLen is the number of levels on the seniority scale.
const SeniorityScaleLen = 7

// SeniorityMidpoint is the ordinal used when a record carries no usable
// seniority. It is the middle of the scale, so the trajectory signal
// treats missing evidence as a partial match rather than a hard failure.
const SeniorityMidpoint = 3

// ParseSeniority canonicalizes a raw seniority string. Upstream parsers
// sometimes emit "intern", which folds into the bottom of the scale.
// Unrecognized values map to SeniorityUnknown.
func ParseSeniority(raw string) Seniority {
	s := Seniority(strings.ToLower(strings.TrimSpace(raw)))
	if s == "intern" {
		return SeniorityJunior
	}
	if _, ok := seniorityOrdinals[s]; ok {
		return s
	}
	return SeniorityUnknown
}

// Ordinal returns the position of s on the scale and whether s is a known
// level. Unknown levels report the scale midpoint.
func (s Seniority) Ordinal() (int, bool) {
	if ord, ok := seniorityOrdinals[s]; ok {
		return ord, true
	}
	return SeniorityMidpoint, false
}
