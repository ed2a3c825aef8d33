package server

import (
	"cmp"
	"slices"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// leaderboard keeps each client's best score, highest first, capped at size.
type leaderboard struct {
	size int
	top  []TopScoreEntry
}

// submit records e if it beats the client's previous best and makes the
// board. Reports whether the board changed.
func (b *leaderboard) submit(e TopScoreEntry) bool {
	if e.Score <= 0 {
		return false
	}
	if i := slices.IndexFunc(b.top, func(t TopScoreEntry) bool { return t.clientID == e.clientID }); i >= 0 {
		if b.top[i].Score >= e.Score {
			return false
		}
		b.top = slices.Delete(b.top, i, i+1)
	}

	b.top = append(b.top, e)
	slices.SortFunc(b.top, func(x, y TopScoreEntry) int {
		if c := cmp.Compare(y.Score, x.Score); c != 0 {
			return c
		}
		return cmp.Compare(x.clientID, y.clientID)
	})

	if len(b.top) > b.size {
		dropped := b.top[b.size]
		b.top = b.top[:b.size]
		if dropped.clientID == e.clientID {
			return false
		}
	}
	return true
}

func (b *leaderboard) entries() []TopScoreEntry {
	return slices.Clone(b.top)
}
