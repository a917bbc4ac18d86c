package plan

import (
	"context"
	"fmt"

	"github.com/paso-sh/paso/pkg/input"
	"github.com/paso-sh/paso/pkg/runtime"
	"github.com/paso-sh/paso/pkg/step"
)

// Install is the stage run from the live environment: keyboard, network,
// clock, disks, base system. It ends by telling the operator to chroot
// and run the configure stage.
func Install() *step.Step {
	return step.Group("install", "Install — live environment",
		step.Group("install.prepare", "Preparation",
			keymapStep(),
			networkStep(),
			clockStep(),
		),
		step.Group("install.disks", "Disks",
			partitionStep(),
			formatStep(),
			mountStep(),
		),
		step.Group("install.base", "Base system",
			mirrorsStep(),
			pacstrapStep(),
			fstabStep(),
		),
		chrootStep(),
	)
}

func keymapStep() *step.Step {
	s := step.Leaf("prepare.keymap", "Console keymap",
		runtime.Marked("prepare.keymap"),
		func(ctx context.Context, sc *step.Context) error {
			km, err := remembered(sc, "keymap", "Console keymap", "us")
			if err != nil {
				return err
			}
			ex, err := sc.In.AskEditableCommand(ctx, "", "loadkeys "+km)
			if err != nil || ex.Skipped || ex.ExitCode != 0 {
				return err
			}
			return confirmComplete(sc, "prepare.keymap")
		})
	s.Guide = "Pick the layout of the keyboard you are typing on. " +
		"`localectl list-keymaps` shows every available layout."
	return s
}

func networkStep() *step.Step {
	s := step.Leaf("prepare.network", "Network connectivity",
		runtime.Command("the network is reachable", "ping", "-c", "1", "-W", "3", "archlinux.org"),
		command("prepare.network", "Test the connection now?",
			"ping -c 3 archlinux.org", false))
	s.Guide = "A working connection is required to download packages. " +
		"Wired interfaces usually come up on their own; for Wi-Fi use `iwctl`."
	return s
}

func clockStep() *step.Step {
	return step.Leaf("prepare.clock", "System clock",
		runtime.FirstOf(
			runtime.Marked("prepare.clock"),
			runtime.Command("NTP synchronization is enabled",
				"sh", "-c", "timedatectl show --property=NTP --value | grep -qx yes"),
		),
		command("prepare.clock", "Enable network time synchronization?",
			"timedatectl set-ntp true", true))
}

func partitionStep() *step.Step {
	s := step.Leaf("disks.partition", "Partition the disk",
		runtime.Marked("disks.partition"),
		func(ctx context.Context, sc *step.Context) error {
			disk, err := remembered(sc, "install_disk", "Disk to install to", "/dev/sda")
			if err != nil {
				return err
			}
			ok, err := sc.In.AskYesNo(fmt.Sprintf("Partition %s now? This will let you modify the partition table.", disk), input.DefaultYes)
			if err != nil || !ok {
				return err
			}
			ex, err := sc.In.AskEditableCommand(ctx, "", "cfdisk "+disk)
			if err != nil || ex.Skipped || ex.ExitCode != 0 {
				return err
			}
			return confirmComplete(sc, "disks.partition")
		})
	s.Guide = "Create at least a root partition. On UEFI systems you also " +
		"need an EFI system partition (~512M, type EFI System); a swap " +
		"partition is optional."
	return s
}

func formatStep() *step.Step {
	return step.Leaf("disks.format", "Format the root partition",
		runtime.Marked("disks.format"),
		func(ctx context.Context, sc *step.Context) error {
			part, err := remembered(sc, "root_partition", "Root partition", "/dev/sda2")
			if err != nil {
				return err
			}
			ok, err := sc.In.AskYesNo(fmt.Sprintf("Format %s as ext4? All data on it will be erased.", part), input.DefaultNo)
			if err != nil || !ok {
				return err
			}
			ex, err := sc.In.AskEditableCommand(ctx, "", "mkfs.ext4 "+part)
			if err != nil || ex.Skipped || ex.ExitCode != 0 {
				return err
			}
			return confirmComplete(sc, "disks.format")
		})
}

func mountStep() *step.Step {
	return step.Leaf("disks.mount", "Mount the filesystems",
		runtime.Command("a filesystem is mounted at /mnt", "findmnt", "/mnt"),
		func(ctx context.Context, sc *step.Context) error {
			part, _ := sc.Store.Get("root_partition")
			if part == "" {
				part = "/dev/sda2"
			}
			ok, err := sc.In.AskYesNo("Mount the root filesystem at /mnt?", input.DefaultYes)
			if err != nil || !ok {
				return err
			}
			_, err = sc.In.AskEditableCommand(ctx, "", fmt.Sprintf("mount %s /mnt", part))
			return err
		})
}

func mirrorsStep() *step.Step {
	s := step.Leaf("base.mirrors", "Pacman mirrors",
		runtime.Marked("base.mirrors"),
		func(ctx context.Context, sc *step.Context) error {
			ok, err := sc.In.AskYesNo("Review the mirror list before installing?", input.DefaultYes)
			if err != nil || !ok {
				return err
			}
			ed, err := editor(sc)
			if err != nil {
				return err
			}
			ex, err := sc.In.AskEditableCommand(ctx, "", ed+" /etc/pacman.d/mirrorlist")
			if err != nil || ex.Skipped || ex.ExitCode != 0 {
				return err
			}
			return confirmComplete(sc, "base.mirrors")
		})
	s.Guide = "Mirrors near you make the install much faster. Put the " +
		"fastest servers at the top of the list, or generate one with " +
		"`reflector`."
	return s
}

func pacstrapStep() *step.Step {
	s := step.Leaf("base.pacstrap", "Install the base system",
		runtime.File("/mnt/usr/lib/os-release"),
		command("base.pacstrap", "Install the base system into /mnt now?",
			"pacstrap -K /mnt base linux linux-firmware", false))
	s.Guide = "This downloads and installs the base packages into /mnt. " +
		"Add anything else you know you will need, for example `vim` or " +
		"`networkmanager`."
	return s
}

func fstabStep() *step.Step {
	return step.Leaf("base.fstab", "Generate fstab",
		runtime.FileContains("/mnt/etc/fstab", "UUID="),
		command("base.fstab", "Generate /etc/fstab from the current mounts?",
			"genfstab -U /mnt >> /mnt/etc/fstab", false))
}

func chrootStep() *step.Step {
	return step.Leaf("install.chroot", "Enter the new system",
		runtime.Info(func(*step.Context) string {
			return "Run `arch-chroot /mnt`, then run `paso configure` inside " +
				"the new system to continue."
		}),
		nil)
}
