package runtime

import "testing"

func TestCPUVendor(t *testing.T) {
	cases := []struct {
		name, cpuinfo, want string
	}{
		{"intel", "processor\t: 0\nvendor_id\t: GenuineIntel\nmodel name\t: whatever\n", "intel"},
		{"amd", "vendor_id\t: AuthenticAMD\n", "amd"},
		{"other", "vendor_id\t: SomethingElse\n", ""},
		{"missing", "processor\t: 0\nmodel name\t: whatever\n", ""},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		if got := cpuVendor(tc.cpuinfo); got != tc.want {
			t.Errorf("%s: cpuVendor = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestEvalWhen(t *testing.T) {
	facts := map[string]any{
		"efi":        true,
		"cpu_vendor": "amd",
		"virt":       false,
	}
	cases := []struct {
		cond string
		want bool
	}{
		{"efi", true},
		{"not efi", false},
		{`cpu_vendor in ["intel", "amd"]`, true},
		{`cpu_vendor == "intel"`, false},
		{"efi and not virt", true},
	}
	for _, tc := range cases {
		got, err := EvalWhen(tc.cond, facts)
		if err != nil {
			t.Errorf("EvalWhen(%q): %v", tc.cond, err)
			continue
		}
		if got != tc.want {
			t.Errorf("EvalWhen(%q) = %v, want %v", tc.cond, got, tc.want)
		}
	}
}

func TestEvalWhenRejectsBadConditions(t *testing.T) {
	facts := map[string]any{"efi": true}
	for _, cond := range []string{"efi && (", "no_such_fact", `"a string"`} {
		if _, err := EvalWhen(cond, facts); err == nil {
			t.Errorf("EvalWhen(%q) accepted an invalid condition", cond)
		}
	}
}
