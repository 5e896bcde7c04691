package pkg

import "testing"

func TestRequirementNode_IsSatisfied(t *testing.T) {
	cases := []struct {
		required, init, remain int
		want                   bool
	}{
		{required: 2, init: 3, remain: 0, want: true},  // all children fired
		{required: 2, init: 3, remain: 1, want: true},  // 2 of 3 fired, meets k
		{required: 2, init: 3, remain: 2, want: false}, // only 1 of 3 fired
		{required: 0, init: 0, remain: 0, want: true},  // no children at all
		{required: 3, init: 3, remain: 3, want: false}, // nothing fired yet
	}
	for _, c := range cases {
		r := requirementNode{required: c.required}
		got := r.isSatisfied(c.init, c.remain)
		if got != c.want {
			t.Errorf("isSatisfied(required=%d, init=%d, remain=%d) = %v, want %v",
				c.required, c.init, c.remain, got, c.want)
		}
	}
}
