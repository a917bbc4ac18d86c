package input

import (
	"context"
	"errors"
	"testing"
)

func TestParseYesNo(t *testing.T) {
	cases := []struct {
		answer    string
		def       Default
		value, ok bool
	}{
		{"y", DefaultNone, true, true},
		{"yes", DefaultNone, true, true},
		{"n", DefaultNone, false, true},
		{"no", DefaultNone, false, true},
		{"", DefaultYes, true, true},
		{"", DefaultNo, false, true},
		{"", DefaultNone, false, false},
		{"maybe", DefaultYes, false, false},
		{"ja", DefaultNo, false, false},
	}
	for _, tc := range cases {
		value, ok := parseYesNo(tc.answer, tc.def)
		if value != tc.value || ok != tc.ok {
			t.Errorf("parseYesNo(%q, %v) = %v, %v; want %v, %v",
				tc.answer, tc.def, value, ok, tc.value, tc.ok)
		}
	}
}

func TestScriptAskText(t *testing.T) {
	s := NewScript("vim", "", Abort)

	if v, err := s.AskText("editor", "nano"); err != nil || v != "vim" {
		t.Errorf("first answer = %q, %v; want vim", v, err)
	}
	if v, err := s.AskText("editor", "nano"); err != nil || v != "nano" {
		t.Errorf("empty answer = %q, %v; want the default", v, err)
	}
	if _, err := s.AskText("editor", "nano"); !errors.Is(err, ErrAborted) {
		t.Errorf("abort marker: err = %v, want ErrAborted", err)
	}
	// Exhausted script keeps answering with defaults.
	if v, err := s.AskText("editor", "nano"); err != nil || v != "nano" {
		t.Errorf("exhausted script = %q, %v; want the default", v, err)
	}
}

func TestScriptAskYesNo(t *testing.T) {
	s := NewScript("y", "NO", "", Abort)

	if v, err := s.AskYesNo("q", DefaultNo); err != nil || !v {
		t.Errorf("explicit yes = %v, %v", v, err)
	}
	if v, err := s.AskYesNo("q", DefaultYes); err != nil || v {
		t.Errorf("case-insensitive no = %v, %v", v, err)
	}
	if v, err := s.AskYesNo("q", DefaultYes); err != nil || !v {
		t.Errorf("empty answer with DefaultYes = %v, %v", v, err)
	}
	if _, err := s.AskYesNo("q", DefaultYes); !errors.Is(err, ErrAborted) {
		t.Errorf("abort marker: err = %v, want ErrAborted", err)
	}
	if v, err := s.AskYesNo("q", DefaultNo); err != nil || v {
		t.Errorf("exhausted script with DefaultNo = %v, %v", v, err)
	}
}

func TestScriptEditableCommand(t *testing.T) {
	ctx := context.Background()
	s := NewScript(Accept, "", "mkfs.ext4 /dev/sdb2")

	ex, err := s.AskEditableCommand(ctx, "", "cfdisk /dev/sda")
	if err != nil || ex.Skipped || ex.Line != "cfdisk /dev/sda" {
		t.Errorf("Accept = %+v, %v; want the proposed line", ex, err)
	}
	ex, err = s.AskEditableCommand(ctx, "", "cfdisk /dev/sda")
	if err != nil || !ex.Skipped {
		t.Errorf("empty answer = %+v, %v; want Skipped", ex, err)
	}
	ex, err = s.AskEditableCommand(ctx, "", "mkfs.ext4 /dev/sda2")
	if err != nil || ex.Line != "mkfs.ext4 /dev/sdb2" {
		t.Errorf("edited line = %+v, %v", ex, err)
	}
	// Exhausted script accepts the proposal, as a dry run would.
	ex, err = s.AskEditableCommand(ctx, "", "genfstab -U /mnt")
	if err != nil || ex.Line != "genfstab -U /mnt" {
		t.Errorf("exhausted script = %+v, %v", ex, err)
	}

	want := []string{"cfdisk /dev/sda", "mkfs.ext4 /dev/sdb2", "genfstab -U /mnt"}
	if len(s.Commands) != len(want) {
		t.Fatalf("recorded %d commands, want %d: %v", len(s.Commands), len(want), s.Commands)
	}
	for i := range want {
		if s.Commands[i] != want[i] {
			t.Errorf("Commands[%d] = %q, want %q", i, s.Commands[i], want[i])
		}
	}
}

func TestScriptEditableCommandExitCode(t *testing.T) {
	s := NewScript(Accept)
	s.ExitCode = 1
	ex, err := s.AskEditableCommand(context.Background(), "", "false")
	if err != nil || ex.ExitCode != 1 {
		t.Errorf("ExitCode = %d, %v; want 1", ex.ExitCode, err)
	}
}

func TestScriptEditableCommandAbort(t *testing.T) {
	s := NewScript(Abort)
	if _, err := s.AskEditableCommand(context.Background(), "", "ls"); !errors.Is(err, ErrAborted) {
		t.Errorf("err = %v, want ErrAborted", err)
	}
}
