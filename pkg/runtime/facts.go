package runtime

import (
	"fmt"
	"os"
	"strings"

	"github.com/expr-lang/expr"
)

// Gather collects host facts once per run. Facts are the environment for
// step When conditions:
//
//	efi        bool   — booted under UEFI firmware
//	cpu_vendor string — "intel", "amd" or ""
//	virt       bool   — hypervisor flag present in cpuinfo
func Gather() map[string]any {
	facts := map[string]any{
		"efi":        false,
		"cpu_vendor": "",
		"virt":       false,
	}
	if _, err := os.Stat("/sys/firmware/efi"); err == nil {
		facts["efi"] = true
	}
	if data, err := os.ReadFile("/proc/cpuinfo"); err == nil {
		facts["cpu_vendor"] = cpuVendor(string(data))
		facts["virt"] = strings.Contains(string(data), "hypervisor")
	}
	return facts
}

func cpuVendor(cpuinfo string) string {
	for _, line := range strings.Split(cpuinfo, "\n") {
		if !strings.HasPrefix(line, "vendor_id") {
			continue
		}
		switch {
		case strings.Contains(line, "GenuineIntel"):
			return "intel"
		case strings.Contains(line, "AuthenticAMD"):
			return "amd"
		}
		return ""
	}
	return ""
}

// EvalWhen evaluates a step applicability condition against the facts.
func EvalWhen(cond string, facts map[string]any) (bool, error) {
	program, err := expr.Compile(cond, expr.Env(facts), expr.AsBool())
	if err != nil {
		return false, fmt.Errorf("compile condition %q: %w", cond, err)
	}
	out, err := expr.Run(program, facts)
	if err != nil {
		return false, fmt.Errorf("eval condition %q: %w", cond, err)
	}
	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q did not return bool (got %T)", cond, out)
	}
	return result, nil
}
