package plan

import (
	"context"
	"fmt"

	"github.com/paso-sh/paso/pkg/input"
	"github.com/paso-sh/paso/pkg/runtime"
	"github.com/paso-sh/paso/pkg/step"
)

// Configure is the stage run inside the chrooted new system: time, locale,
// identity, boot loader, services, cleanup.
func Configure() *step.Step {
	return step.Group("configure", "Configure — inside the new system",
		step.Group("configure.locale", "Time and locale",
			timezoneStep(),
			localeStep(),
			vconsoleStep(),
		),
		step.Group("configure.identity", "Hostname and users",
			hostnameStep(),
			rootPasswordStep(),
			userStep(),
		),
		step.Group("configure.boot", "Boot",
			firmwareStep(),
			microcodeStep(),
			grubStep(),
			systemdBootStep(),
		),
		step.Group("configure.services", "Services",
			networkServiceStep(),
		),
		step.Group("configure.finish", "Finish",
			cleanupStep(),
		),
	)
}

func timezoneStep() *step.Step {
	return step.Leaf("locale.timezone", "Time zone",
		runtime.File("/etc/localtime"),
		func(ctx context.Context, sc *step.Context) error {
			tz, err := remembered(sc, "timezone", "Time zone (Region/City)", "UTC")
			if err != nil {
				return err
			}
			_, err = sc.In.AskEditableCommand(ctx, "",
				fmt.Sprintf("ln -sf /usr/share/zoneinfo/%s /etc/localtime && hwclock --systohc", tz))
			return err
		})
}

func localeStep() *step.Step {
	s := step.Leaf("locale.locale", "System locale",
		runtime.FileContains("/etc/locale.conf", "LANG="),
		func(ctx context.Context, sc *step.Context) error {
			loc, err := remembered(sc, "locale", "System locale", "en_US.UTF-8")
			if err != nil {
				return err
			}
			_, err = sc.In.AskEditableCommand(ctx, "", fmt.Sprintf(
				"sed -i 's/^#%[1]s/%[1]s/' /etc/locale.gen && locale-gen && echo 'LANG=%[1]s' > /etc/locale.conf", loc))
			return err
		})
	s.Guide = "Uncomment every locale you need in `/etc/locale.gen`; the " +
		"first one becomes the system default in `/etc/locale.conf`."
	return s
}

func vconsoleStep() *step.Step {
	return step.Leaf("locale.vconsole", "Persist console keymap",
		runtime.File("/etc/vconsole.conf"),
		func(ctx context.Context, sc *step.Context) error {
			km, _ := sc.Store.Get("keymap")
			if km == "" {
				km = "us"
			}
			_, err := sc.In.AskEditableCommand(ctx, "",
				fmt.Sprintf("echo 'KEYMAP=%s' > /etc/vconsole.conf", km))
			return err
		})
}

func hostnameStep() *step.Step {
	return step.Leaf("identity.hostname", "Hostname",
		runtime.File("/etc/hostname"),
		func(ctx context.Context, sc *step.Context) error {
			name, err := remembered(sc, "hostname", "Hostname", "arch")
			if err != nil {
				return err
			}
			_, err = sc.In.AskEditableCommand(ctx, "",
				fmt.Sprintf("echo '%s' > /etc/hostname", name))
			return err
		})
}

func rootPasswordStep() *step.Step {
	return step.Leaf("identity.rootpw", "Root password",
		runtime.Marked("identity.rootpw"),
		command("identity.rootpw", "Set the root password now?", "passwd", true))
}

func userStep() *step.Step {
	return step.Leaf("identity.user", "Create a user",
		runtime.Marked("identity.user"),
		func(ctx context.Context, sc *step.Context) error {
			name, err := remembered(sc, "username", "User name", "")
			if err != nil {
				return err
			}
			if name == "" {
				fmt.Fprintln(sc.Out, "No user name given; skipping.")
				return nil
			}
			ex, err := sc.In.AskEditableCommand(ctx, "",
				fmt.Sprintf("useradd -m -G wheel %[1]s && passwd %[1]s", name))
			if err != nil || ex.Skipped || ex.ExitCode != 0 {
				return err
			}
			return confirmComplete(sc, "identity.user")
		})
}

func firmwareStep() *step.Step {
	return step.Leaf("boot.firmware", "Firmware type",
		runtime.Info(func(sc *step.Context) string {
			if efi, _ := sc.Facts["efi"].(bool); efi {
				return "This machine booted under UEFI; the systemd-boot step applies."
			}
			return "This machine booted under legacy BIOS; the GRUB step applies."
		}),
		nil)
}

func microcodeStep() *step.Step {
	s := step.Leaf("boot.microcode", "CPU microcode",
		runtime.Marked("boot.microcode"),
		func(ctx context.Context, sc *step.Context) error {
			pkg := "amd-ucode"
			if v, _ := sc.Facts["cpu_vendor"].(string); v == "intel" {
				pkg = "intel-ucode"
			}
			ok, err := sc.In.AskYesNo("Install CPU microcode updates?", input.DefaultYes)
			if err != nil || !ok {
				return err
			}
			ex, err := sc.In.AskEditableCommand(ctx, "", "pacman -S --noconfirm "+pkg)
			if err != nil || ex.Skipped || ex.ExitCode != 0 {
				return err
			}
			return confirmComplete(sc, "boot.microcode")
		})
	s.When = `cpu_vendor in ["intel", "amd"]`
	return s
}

func grubStep() *step.Step {
	s := step.Leaf("boot.grub", "Install GRUB (BIOS)",
		runtime.File("/boot/grub/grub.cfg"),
		func(ctx context.Context, sc *step.Context) error {
			disk, _ := sc.Store.Get("install_disk")
			if disk == "" {
				disk = "/dev/sda"
			}
			_, err := sc.In.AskEditableCommand(ctx, "", fmt.Sprintf(
				"pacman -S --noconfirm grub && grub-install --target=i386-pc %s && grub-mkconfig -o /boot/grub/grub.cfg", disk))
			return err
		})
	s.When = "not efi"
	return s
}

func systemdBootStep() *step.Step {
	s := step.Leaf("boot.systemdboot", "Install systemd-boot (UEFI)",
		runtime.File("/boot/loader/loader.conf"),
		command("boot.systemdboot", "Install systemd-boot to the EFI partition?",
			"bootctl install", false))
	s.When = "efi"
	s.Guide = "After `bootctl install`, add a loader entry under " +
		"`/boot/loader/entries/` pointing at the kernel and the root " +
		"partition."
	return s
}

func networkServiceStep() *step.Step {
	return step.Leaf("services.network", "Network manager",
		runtime.Command("NetworkManager is enabled", "systemctl", "is-enabled", "-q", "NetworkManager"),
		command("services.network", "Install and enable NetworkManager?",
			"pacman -S --noconfirm networkmanager && systemctl enable NetworkManager", false))
}

func cleanupStep() *step.Step {
	return step.Leaf("finish.cleanup", "Remove saved progress",
		func(sc *step.Context) (step.Status, string) {
			if !sc.Store.Enabled() {
				return step.StatusDone, "no saved progress to remove"
			}
			return step.StatusNotDone, "saved progress still present at " + sc.Store.Dir()
		},
		func(ctx context.Context, sc *step.Context) error {
			ok, err := sc.In.AskYesNo("Installation finished — remove the saved progress and configuration?", input.DefaultNo)
			if err != nil || !ok {
				return err
			}
			return sc.Store.Remove()
		})
}
