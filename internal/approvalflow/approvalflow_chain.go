package approvalflow

import (
	"sort"

	"github.com/google/uuid"
)

// LinkedLevel is a level with its neighbours in the chain of its asset type.
type LinkedLevel struct {
	ApprovalLevel
	NextLevelID     *uuid.UUID
	PreviousLevelID *uuid.UUID
}

// LinkChain orders levels by level number within each asset type and links
// neighbours. Asset types keep the order in which they first appear.
func LinkChain(levels []ApprovalLevel) []LinkedLevel {
	groups := make(map[uuid.UUID][]ApprovalLevel)
	var order []uuid.UUID
	for _, l := range levels {
		if _, ok := groups[l.AssetTypeID]; !ok {
			order = append(order, l.AssetTypeID)
		}
		groups[l.AssetTypeID] = append(groups[l.AssetTypeID], l)
	}

	out := make([]LinkedLevel, 0, len(levels))
	for _, typeID := range order {
		chain := groups[typeID]
		sort.SliceStable(chain, func(i, j int) bool {
			return chain[i].LevelNumber < chain[j].LevelNumber
		})

		for i := range chain {
			linked := LinkedLevel{ApprovalLevel: chain[i]}
			if i > 0 {
				prev := chain[i-1].ID
				linked.PreviousLevelID = &prev
			}
			if i < len(chain)-1 {
				next := chain[i+1].ID
				linked.NextLevelID = &next
			}
			out = append(out, linked)
		}
	}
	return out
}

// Successor returns the level following current in its asset type's chain, or
// nil when current is the tail or is not part of levels.
func Successor(levels []ApprovalLevel, current uuid.UUID) *ApprovalLevel {
	var cur *ApprovalLevel
	for i := range levels {
		if levels[i].ID == current {
			cur = &levels[i]
			break
		}
	}
	if cur == nil {
		return nil
	}

	var next *ApprovalLevel
	for i := range levels {
		l := &levels[i]
		if l.AssetTypeID != cur.AssetTypeID || l.LevelNumber <= cur.LevelNumber {
			continue
		}
		if next == nil || l.LevelNumber < next.LevelNumber {
			next = l
		}
	}
	return next
}

// Head returns level number 1 of the chain, or nil when the chain has none.
func Head(levels []ApprovalLevel) *ApprovalLevel {
	for i := range levels {
		if levels[i].LevelNumber == 1 {
			return &levels[i]
		}
	}
	return nil
}
