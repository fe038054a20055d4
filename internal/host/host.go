// Package host checks and prepares the host environment for bus access:
// privilege, kernel module availability, and the delegated transaction
// tools.
package host

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// PrivilegeError reports that the process lacks the privilege required for
// real bus transactions.
type PrivilegeError struct {
	EUID int
}

func (e *PrivilegeError) Error() string {
	return fmt.Sprintf("host: bus access requires root privilege (running as uid %d)", e.EUID)
}

// MissingToolError reports that a required transaction tool is absent. It
// is raised before any bus access is attempted.
type MissingToolError struct {
	Tool string
	Err  error
}

func (e *MissingToolError) Error() string {
	return fmt.Sprintf("host: required tool %q not found: %v", e.Tool, e.Err)
}

func (e *MissingToolError) Unwrap() error { return e.Err }

// RequireRoot returns a PrivilegeError unless the process runs with an
// effective uid of 0.
func RequireRoot() error {
	if euid := os.Geteuid(); euid != 0 {
		return &PrivilegeError{EUID: euid}
	}
	return nil
}

// EnsureI2CDev loads the i2c-dev kernel module so /dev/i2c-N device files
// exist. Failure is tolerated: the module may be built in, already loaded,
// or the platform may not use modules at all. The actual bus access will
// surface any real problem.
func EnsureI2CDev(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := exec.Command("modprobe", "i2c-dev").Run(); err != nil {
		logger.Debug("modprobe i2c-dev failed, continuing", "error", err)
	}
}

// FindTool resolves the path of a transaction tool. A non-empty override
// is verified to exist; otherwise the tool is looked up on PATH. The
// returned error is a *MissingToolError.
func FindTool(name, override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", &MissingToolError{Tool: name, Err: err}
		}
		return override, nil
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", &MissingToolError{Tool: name, Err: err}
	}
	return path, nil
}
