package question

// Side identifies a column of a pairing board.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// BoardItem is one tile on a pairing board. Key is the index of the pair
// the tile belongs to; a left and right tile match when their keys agree.
type BoardItem struct {
	Key     int
	Text    string
	Matched bool
}

// MatchResult describes what a selection did to the board.
type MatchResult int

const (
	MatchNone     MatchResult = iota // Selection recorded, waiting for the other side
	MatchCorrect                     // A pair was matched
	MatchWrong                       // The selected tiles do not belong together; selection cleared
	MatchComplete                    // The last pair was matched
)

// Board is the interactive state of a connect question. The two columns
// are ordered independently. A wrong pair only clears the selection; it is
// never scored against the learner.
type Board struct {
	Left  []BoardItem
	Right []BoardItem

	selLeft  int
	selRight int
	matched  int
	wrong    int
}

// NewBoard builds a board for q. The order functions receive the pair
// indices and return them permuted; pass nil to keep authored order.
func NewBoard(q *Connect, orderLeft, orderRight func([]int) []int) *Board {
	idx := make([]int, len(q.Pairs))
	for i := range idx {
		idx[i] = i
	}
	li, ri := idx, append([]int(nil), idx...)
	if orderLeft != nil {
		li = orderLeft(li)
	}
	if orderRight != nil {
		ri = orderRight(ri)
	}

	b := &Board{selLeft: -1, selRight: -1}
	for _, k := range li {
		b.Left = append(b.Left, BoardItem{Key: k, Text: q.Pairs[k].Left})
	}
	for _, k := range ri {
		b.Right = append(b.Right, BoardItem{Key: k, Text: q.Pairs[k].Right})
	}
	return b
}

// Selected returns the selected row on each side, or -1.
func (b *Board) Selected() (left, right int) {
	return b.selLeft, b.selRight
}

// Select picks the tile at row on side. Selecting a matched tile is ignored.
// Once both sides have a selection the pair is resolved.
func (b *Board) Select(side Side, row int) MatchResult {
	col := b.column(side)
	if row < 0 || row >= len(col) || col[row].Matched || b.Complete() {
		return MatchNone
	}
	if side == SideLeft {
		b.selLeft = row
	} else {
		b.selRight = row
	}
	if b.selLeft < 0 || b.selRight < 0 {
		return MatchNone
	}

	l, r := &b.Left[b.selLeft], &b.Right[b.selRight]
	b.selLeft, b.selRight = -1, -1
	if l.Key != r.Key && !b.sameRightText(l.Key, r) {
		b.wrong++
		return MatchWrong
	}
	l.Matched, r.Matched = true, true
	b.matched++
	if b.Complete() {
		return MatchComplete
	}
	return MatchCorrect
}

// sameRightText reports whether r shows the same text as the unmatched
// right tile keyed k. Identical tiles are interchangeable, so the keys are
// swapped to keep the remaining tile matchable.
func (b *Board) sameRightText(k int, r *BoardItem) bool {
	for i := range b.Right {
		o := &b.Right[i]
		if o.Key == k && !o.Matched && o.Text == r.Text {
			o.Key, r.Key = r.Key, o.Key
			return true
		}
	}
	return false
}

// Complete reports whether every pair has been matched.
func (b *Board) Complete() bool {
	return b.matched == len(b.Left)
}

// WrongAttempts is the number of mismatched pairs tried so far.
func (b *Board) WrongAttempts() int {
	return b.wrong
}

func (b *Board) column(side Side) []BoardItem {
	if side == SideLeft {
		return b.Left
	}
	return b.Right
}
