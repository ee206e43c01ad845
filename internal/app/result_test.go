package app

import (
	"errors"
	"testing"

	"quiz-player/internal/domain"
)

func TestPercentageRounds(t *testing.T) {
	cases := []struct {
		score, max, want int
	}{
		{10, 30, 33},
		{20, 30, 67},
		{1, 8, 13},
		{30, 30, 100},
		{0, 30, 0},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := Percentage(tc.score, tc.max); got != tc.want {
			t.Fatalf("Percentage(%d, %d) = %d, want %d", tc.score, tc.max, got, tc.want)
		}
	}
}

func TestResolveBandPicksFirstMatch(t *testing.T) {
	bands := []domain.ResultBand{
		{ID: "a", MinPercent: 0, MaxPercent: 50},
		{ID: "b", MinPercent: 50, MaxPercent: 100},
	}
	band, err := ResolveBand(bands, 50)
	if err != nil || band.ID != "a" {
		t.Fatalf("expected overlapping bound to resolve to first band, got %+v %v", band, err)
	}
	band, err = ResolveBand(bands, 100)
	if err != nil || band.ID != "b" {
		t.Fatalf("expected inclusive upper bound, got %+v %v", band, err)
	}
}

func TestResolveBandWithoutMatch(t *testing.T) {
	_, err := ResolveBand([]domain.ResultBand{{MinPercent: 10, MaxPercent: 20}}, 5)
	if !errors.Is(err, domain.ErrNoMatchingBand) {
		t.Fatalf("expected no matching band, got %v", err)
	}
}

func TestEvaluateMarkers(t *testing.T) {
	q := domain.Question{
		Kind:          domain.MultipleChoice,
		Options:       []domain.Option{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}},
		CorrectAnswer: []string{"1", "2"},
	}
	correct, markers := evaluate(q, []string{"2", "3"})
	if correct {
		t.Fatalf("expected incorrect answer")
	}
	want := []domain.AnswerMarker{
		{OptionID: "1", Mark: domain.MarkMissingCorrect},
		{OptionID: "2", Mark: domain.MarkCorrectSelected},
		{OptionID: "3", Mark: domain.MarkWrong},
	}
	if len(markers) != len(want) {
		t.Fatalf("unexpected markers %+v", markers)
	}
	for i := range want {
		if markers[i] != want[i] {
			t.Fatalf("marker %d = %+v, want %+v", i, markers[i], want[i])
		}
	}
}

func TestToggleSingleChoiceTwiceDeselects(t *testing.T) {
	q := domain.Question{Kind: domain.SingleChoice, Options: []domain.Option{{ID: "x"}, {ID: "y"}}}
	sel := toggle(q, nil, "x")
	sel = toggle(q, sel, "x")
	if len(sel) != 0 {
		t.Fatalf("expected empty selection, got %v", sel)
	}
}
