// Package device talks to a reMarkable tablet over the USB-Ethernet SSH
// link exposed by xochitl, the device's own UI process. It runs remote
// commands, pulls files with rsync, and locates the live framebuffer so
// the streamer can read it.
package device

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

const (
	usbSourceUser = "root"
	usbSourceHost = "10.11.99.1"
)

// Remarkable is a handle to the tablet reachable at usbSourceUser@usbSourceHost.
type Remarkable struct {
	user string
	host string
}

// Open returns a Remarkable bound to the standard USB-Ethernet address.
func Open() *Remarkable {
	return &Remarkable{user: usbSourceUser, host: usbSourceHost}
}

// doCmd runs cmd locally, capturing stdout/stderr, and errors on a
// non-zero exit.
func doCmd(cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %v: %s", strings.Join(cmd.Args, " "), err, stderr.String())
	}
	return stdout.String(), nil
}

// sshCmd wraps remoteArgs in an ssh invocation against the tablet.
func (r *Remarkable) sshCmd(remoteArgs ...string) *exec.Cmd {
	args := append([]string{fmt.Sprintf("%s@%s", r.user, r.host)}, remoteArgs...)
	return exec.Command("ssh", args...)
}

// RunRemote runs remoteArgs on the tablet over ssh and returns its stdout.
func (r *Remarkable) RunRemote(remoteArgs ...string) (string, error) {
	return doCmd(r.sshCmd(remoteArgs...))
}

// RsyncFrom copies remoteDir from the tablet into localDir.
func (r *Remarkable) RsyncFrom(remoteDir, localDir string) error {
	src := fmt.Sprintf("%s@%s:%s", r.user, r.host, remoteDir)
	_, err := doCmd(exec.Command("rsync", "--recursive", src, localDir))
	return err
}

// Ls lists the tablet's home directory, mainly useful for connectivity checks.
func (r *Remarkable) Ls() (string, error) {
	return r.RunRemote("ls")
}

// XochitlPID returns the PID of the running xochitl process.
func (r *Remarkable) XochitlPID() (int, error) {
	out, err := r.RunRemote("pidof", "xochitl")
	if err != nil {
		return 0, fmt.Errorf("xochitl is not running: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("unexpected pidof output %q: %w", out, err)
	}
	return pid, nil
}

// fbMapLinePrefix is what the /dev/fb0 mapping line in /proc/<pid>/maps
// ends with: "<start>-<end> <perms> <offset> <dev> <inode>  /dev/fb0".
const fbMapLinePrefix = "/dev/fb0"

// FramebufferOffset reads /proc/<pid>/maps over ssh and returns the start
// address of the /dev/fb0 mapping.
func (r *Remarkable) FramebufferOffset(pid int) (int64, error) {
	out, err := r.RunRemote("cat", fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return 0, fmt.Errorf("failed to read process maps: %w", err)
	}
	return parseFramebufferOffset(out)
}

// parseFramebufferOffset scans the text of /proc/<pid>/maps for the
// /dev/fb0 mapping and returns its start address.
func parseFramebufferOffset(maps string) (int64, error) {
	for _, line := range strings.Split(maps, "\n") {
		if !strings.HasSuffix(strings.TrimSpace(line), fbMapLinePrefix) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		addrRange := strings.SplitN(fields[0], "-", 2)
		if len(addrRange) != 2 {
			return 0, fmt.Errorf("malformed maps line: %q", line)
		}
		addr, err := strconv.ParseInt(addrRange[0], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed start address %q: %w", addrRange[0], err)
		}
		return addr, nil
	}
	return 0, fmt.Errorf("no /dev/fb0 mapping found in maps text")
}

// ReadFramebuffer dd's length bytes starting at offset from the running
// xochitl process's memory (/proc/<pid>/mem) over ssh.
func (r *Remarkable) ReadFramebuffer(pid int, offset int64, length int) ([]byte, error) {
	remote := fmt.Sprintf(
		"dd if=/proc/%d/mem bs=1 skip=%d count=%d 2>/dev/null",
		pid, offset, length,
	)
	cmd := r.sshCmd(remote)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to read framebuffer: %v: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}
