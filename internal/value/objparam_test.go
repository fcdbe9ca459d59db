package value_test

import (
	"testing"

	"github.com/spwn-lang/spwn/internal/value"
)

func TestObjectParameterString(t *testing.T) {
	cases := []struct {
		name string
		p    value.ObjectParameter
		want string
	}{
		{"specific_group", value.ObjParamGroup(value.NewSpecific(value.ClassGroup, 5)), "5"},
		{"arbitrary_group_unresolved", value.ObjParamGroup(value.NewArbitrary(value.ClassGroup, 3)), "0"},
		{"whole_number", value.ObjParamNumber(10), "10"},
		{"fractional_number", value.ObjParamNumber(1.5), "1.500"},
		{"bool_true", value.ObjParamBool(true), "1"},
		{"bool_false", value.ObjParamBool(false), "0"},
		{"text", value.ObjParamText("hello"), "hello"},
		{"epsilon", value.ObjParamEpsilon(), "0.05"},
		{"group_list", value.ObjParamGroupList([]value.Id{
			value.NewSpecific(value.ClassGroup, 1),
			value.NewSpecific(value.ClassGroup, 2),
		}), "1.2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.String(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
