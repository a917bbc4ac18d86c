package step

import (
	"strings"
	"testing"
)

func probeNotDone(*Context) (Status, string) { return StatusNotDone, "" }

func leaf(name string) *Step { return Leaf(name, name, probeNotDone, nil) }

func TestValidateAcceptsWellFormedTree(t *testing.T) {
	root := Group("stage", "Stage",
		Group("stage.a", "A", leaf("a.one"), leaf("a.two")),
		Group("stage.b", "B", Group("b.inner", "Inner", leaf("b.one"))),
		leaf("stage.tail"),
	)
	if err := Validate(root); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	deep := leaf("l")
	for i := 0; i < MaxDepth; i++ {
		deep = Group("g"+strings.Repeat("x", i+1), "g", deep)
	}

	withProbe := Group("g", "g", leaf("a"))
	withProbe.Probe = probeNotDone

	cases := []struct {
		name string
		root *Step
		want string
	}{
		{"duplicate name", Group("g", "g", leaf("a"), leaf("a")), "duplicate"},
		{"empty name", Group("", "g", leaf("a")), "no name"},
		{"composite without children", Group("g", "g"), "no children"},
		{"leaf without probe", Group("g", "g", Leaf("a", "a", nil, nil)), "no probe"},
		{"leaf with children", Group("g", "g", &Step{Name: "a", Title: "a", Kind: KindLeaf, Probe: probeNotDone, Children: []*Step{leaf("b")}}), "has children"},
		{"composite with probe", withProbe, "must not have"},
		{"too deep", deep, "depth"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.root)
			if err == nil {
				t.Fatal("Validate accepted an invalid tree")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestShouldRun(t *testing.T) {
	cases := []struct {
		status         Status
		normal, forced bool
	}{
		{StatusNotDone, true, true},
		{StatusDone, false, true},
		{StatusUnknown, true, true},
		{StatusNeverRun, false, false},
		{StatusInapplicable, false, false},
	}
	for _, tc := range cases {
		if got := tc.status.ShouldRun(false); got != tc.normal {
			t.Errorf("%s.ShouldRun(false) = %v, want %v", tc.status, got, tc.normal)
		}
		if got := tc.status.ShouldRun(true); got != tc.forced {
			t.Errorf("%s.ShouldRun(true) = %v, want %v", tc.status, got, tc.forced)
		}
	}
}

func TestWalkVisitsExecutionOrder(t *testing.T) {
	root := Group("stage", "Stage",
		Group("a", "A", leaf("a.1"), leaf("a.2")),
		leaf("tail"),
	)
	var names []string
	var depths []int
	Walk(root, func(s *Step, depth int) {
		names = append(names, s.Name)
		depths = append(depths, depth)
	})
	if got, want := strings.Join(names, " "), "stage a a.1 a.2 tail"; got != want {
		t.Errorf("walk order = %q, want %q", got, want)
	}
	wantDepths := []int{0, 1, 2, 2, 1}
	for i := range wantDepths {
		if depths[i] != wantDepths[i] {
			t.Errorf("depth of %s = %d, want %d", names[i], depths[i], wantDepths[i])
		}
	}

	leaves := Leaves(root)
	if len(leaves) != 3 || leaves[0].Name != "a.1" || leaves[2].Name != "tail" {
		t.Errorf("Leaves returned %d nodes, want the 3 leaves in order", len(leaves))
	}
}
