package diagnostic_test

import (
	"reflect"
	"testing"

	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/token"
)

func TestSuggest(t *testing.T) {
	candidates := []string{"length", "long", "lenght", "width", "height"}
	got := diagnostic.Suggest("legnth", candidates)
	want := []string{"length", "lenght"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSuggestCapsAtFive(t *testing.T) {
	candidates := []string{"aa", "ab", "ac", "ad", "ae", "af"}
	got := diagnostic.Suggest("zz", candidates)
	if len(got) > 5 {
		t.Errorf("expected at most 5 suggestions, got %d", len(got))
	}
}

func TestUndefinedErrNote(t *testing.T) {
	err := diagnostic.UndefinedErr(token.Span{File: "test.spwn"}, "lenght", []string{"length"})
	if err.Note == "" {
		t.Errorf("expected a did-you-mean note")
	}
}
