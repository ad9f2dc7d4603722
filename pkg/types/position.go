// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidPosition is returned when a position is unknown or not
	// offered for the requested ranking type.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidScoring is returned when a scoring option is unknown or not
	// offered for the requested position.
	ErrInvalidScoring = errors.New("invalid scoring")
)

// Position is a FantasyPros ranking position.
type Position string

const (
	PosAll    Position = "ALL"
	PosQB     Position = "QB"
	PosRB     Position = "RB"
	PosWR     Position = "WR"
	PosTE     Position = "TE"
	PosFlex   Position = "FLEX"
	PosQBFlex Position = "QB-FLEX"
	PosDST    Position = "DST"
	PosK      Position = "K"
)

// Scoring is a league scoring format.
type Scoring string

const (
	ScoringStandard Scoring = "STD"
	ScoringHalfPPR  Scoring = "HALF"
	ScoringPPR      Scoring = "PPR"
)

// ScoringOptions lists every scoring format in the order files are written.
var ScoringOptions = []Scoring{ScoringStandard, ScoringHalfPPR, ScoringPPR}

// WeeklyPositions lists every position with weekly rankings, in write order.
var WeeklyPositions = []Position{PosQB, PosRB, PosWR, PosTE, PosFlex, PosQBFlex, PosDST, PosK}

// DraftPositions lists the positions with draft rankings. Flex rankings are
// weekly only.
var DraftPositions = []Position{PosQB, PosRB, PosWR, PosTE, PosDST, PosK}

var positionScoring = map[Position][]Scoring{
	PosQB:     {ScoringStandard},
	PosRB:     ScoringOptions,
	PosWR:     ScoringOptions,
	PosTE:     ScoringOptions,
	PosFlex:   ScoringOptions,
	PosQBFlex: ScoringOptions,
	PosDST:    {ScoringStandard},
	PosK:      {ScoringStandard},
}

// ParsePosition converts a case-insensitive position name.
func ParsePosition(s string) (Position, error) {
	p := Position(strings.ToUpper(strings.TrimSpace(s)))
	if p == PosAll {
		return p, nil
	}
	if _, ok := positionScoring[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return p, nil
}

// ParseScoring converts a case-insensitive scoring name.
func ParseScoring(s string) (Scoring, error) {
	sc := Scoring(strings.ToUpper(strings.TrimSpace(s)))
	if !slices.Contains(ScoringOptions, sc) {
		return "", fmt.Errorf("%w: %q should be one of %v", ErrInvalidScoring, s, ScoringOptions)
	}
	return sc, nil
}

// Lower returns the position as it appears in FantasyPros page names.
func (p Position) Lower() string {
	return strings.ToLower(string(p))
}

// ScoringFor returns the scoring formats offered for the position. ALL
// accepts every format.
func (p Position) ScoringFor() []Scoring {
	if p == PosAll {
		return ScoringOptions
	}
	return positionScoring[p]
}

// IsDraft reports whether the position has draft rankings.
func (p Position) IsDraft() bool {
	return slices.Contains(DraftPositions, p)
}

// ValidateScoring checks that scoring is a known format offered for pos.
func ValidateScoring(pos Position, scoring Scoring) error {
	if !slices.Contains(ScoringOptions, scoring) {
		return fmt.Errorf("%w: %q should be one of %v", ErrInvalidScoring, scoring, ScoringOptions)
	}
	if pos == PosAll {
		return nil
	}
	allowed, ok := positionScoring[pos]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPosition, pos)
	}
	if !slices.Contains(allowed, scoring) {
		return fmt.Errorf("%w: %s is not a valid scoring option for %s", ErrInvalidScoring, scoring, pos)
	}
	return nil
}
