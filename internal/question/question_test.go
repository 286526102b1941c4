package question

import (
	"errors"
	"testing"
)

func sampleMC() *MultipleChoice {
	return &MultipleChoice{
		Meta:   Meta{QID: "q1", Text: "Which is 'water'?"},
		Choice: Choice{Options: []string{"вода", "леб", "куќа"}, Answer: "вода"},
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindMultipleChoice, "multiple-choice"},
		{KindTranslate, "translate"},
		{KindFillGap, "fill-gap"},
		{KindConnect, "connect"},
		{Kind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
		if tt.want == "unknown" {
			continue
		}
		k, ok := ParseKind(tt.want)
		if !ok || k != tt.kind {
			t.Errorf("ParseKind(%q) = %v, %v; want %v, true", tt.want, k, ok, tt.kind)
		}
	}
	if _, ok := ParseKind("essay"); ok {
		t.Error("ParseKind(essay) should fail")
	}
}

func TestCloneIsDeep(t *testing.T) {
	q := sampleMC()
	c := Clone(q).(*MultipleChoice)
	c.Options[0] = "changed"
	if q.Options[0] != "вода" {
		t.Errorf("original options mutated: %v", q.Options)
	}

	conn := &Connect{Meta: Meta{QID: "c"}, Pairs: []Pair{{"a", "b"}}}
	cc := Clone(conn).(*Connect)
	cc.Pairs[0].Left = "z"
	if conn.Pairs[0].Left != "a" {
		t.Error("connect pairs mutated through clone")
	}
}

func TestAsRecapAndRetry(t *testing.T) {
	q := sampleMC()

	r := AsRecap(q, "recap_1_q1_x")
	if r.ID() != "recap_1_q1_x" || !r.IsRecap() || r.IsRetry() {
		t.Errorf("recap clone = id %q recap %v retry %v", r.ID(), r.IsRecap(), r.IsRetry())
	}
	if q.IsRecap() || q.ID() != "q1" {
		t.Error("AsRecap mutated original")
	}

	rt := AsRetry(r)
	if !rt.IsRetry() || !rt.IsRecap() || rt.ID() != r.ID() {
		t.Errorf("retry clone lost attributes: id %q recap %v retry %v", rt.ID(), rt.IsRecap(), rt.IsRetry())
	}
	if r.IsRetry() {
		t.Error("AsRetry mutated its input")
	}
}

func TestCheckChoice(t *testing.T) {
	q := sampleMC()
	if ok, err := CheckChoice(q, "вода"); err != nil || !ok {
		t.Errorf("CheckChoice(correct) = %v, %v", ok, err)
	}
	if ok, _ := CheckChoice(q, "Вода"); ok {
		t.Error("CheckChoice is exact; case variant must not match")
	}

	conn := &Connect{Meta: Meta{QID: "c"}}
	if _, err := CheckChoice(conn, "x"); !errors.Is(err, ErrNotSelectable) {
		t.Errorf("CheckChoice(connect) err = %v, want ErrNotSelectable", err)
	}
	if Selectable(conn) {
		t.Error("connect must not be selectable")
	}
}

func TestMatchOption(t *testing.T) {
	q := sampleMC()
	if got := MatchOption(q, "  ВОДА "); got != "вода" {
		t.Errorf("MatchOption = %q, want вода", got)
	}
	if got := MatchOption(q, "млеко"); got != "млеко" {
		t.Errorf("MatchOption(no match) = %q, want input", got)
	}
}

func reverse(in []int) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

func TestBoardMatching(t *testing.T) {
	q := &Connect{
		Meta:  Meta{QID: "c"},
		Pairs: []Pair{{"еден", "one"}, {"два", "two"}, {"три", "three"}},
	}
	b := NewBoard(q, nil, reverse)

	if b.Right[0].Text != "three" {
		t.Fatalf("right column not reordered: %+v", b.Right)
	}

	// Wrong pair clears the selection and is only counted, never failed.
	if got := b.Select(SideLeft, 0); got != MatchNone {
		t.Errorf("first select = %v, want MatchNone", got)
	}
	if got := b.Select(SideRight, 0); got != MatchWrong {
		t.Errorf("mismatch = %v, want MatchWrong", got)
	}
	if l, r := b.Selected(); l != -1 || r != -1 {
		t.Errorf("selection after mismatch = %d,%d; want cleared", l, r)
	}
	if b.WrongAttempts() != 1 {
		t.Errorf("WrongAttempts = %d, want 1", b.WrongAttempts())
	}

	if got := b.Select(SideRight, 2); got != MatchNone {
		t.Errorf("right first = %v", got)
	}
	if got := b.Select(SideLeft, 0); got != MatchCorrect {
		t.Errorf("еден/one = %v, want MatchCorrect", got)
	}
	// Matched tiles are inert.
	if got := b.Select(SideLeft, 0); got != MatchNone {
		t.Errorf("select matched tile = %v, want MatchNone", got)
	}

	b.Select(SideLeft, 1)
	if got := b.Select(SideRight, 1); got != MatchCorrect {
		t.Errorf("два/two = %v", got)
	}
	b.Select(SideLeft, 2)
	if got := b.Select(SideRight, 0); got != MatchComplete {
		t.Errorf("last pair = %v, want MatchComplete", got)
	}
	if !b.Complete() {
		t.Error("board should be complete")
	}
}

func TestBoardIdenticalRightTilesInterchangeable(t *testing.T) {
	q := &Connect{
		Meta:  Meta{QID: "c"},
		Pairs: []Pair{{"здраво", "Hello"}, {"ало", "Hello"}, {"да", "Yes"}},
	}
	b := NewBoard(q, nil, nil)

	// здраво with the second Hello tile is still a match.
	b.Select(SideLeft, 0)
	if got := b.Select(SideRight, 1); got != MatchCorrect {
		t.Fatalf("здраво/Hello = %v, want MatchCorrect", got)
	}
	b.Select(SideLeft, 1)
	if got := b.Select(SideRight, 0); got != MatchCorrect {
		t.Errorf("ало/Hello = %v, want MatchCorrect", got)
	}
	b.Select(SideLeft, 2)
	if got := b.Select(SideRight, 2); got != MatchComplete {
		t.Errorf("да/Yes = %v, want MatchComplete", got)
	}
	if b.WrongAttempts() != 0 {
		t.Errorf("WrongAttempts = %d, want 0", b.WrongAttempts())
	}
}
