package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"musiclink/internal/config"
	"musiclink/internal/deps"
)

// CheckSourceAccess verifies that the directory exists and can be listed.
func CheckSourceAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckDestinationAccess verifies that the directory is writable, or that it
// can be created below its nearest existing ancestor.
func CheckDestinationAccess(name, path string) Result {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
		}
		if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (write ok)", path)}
	case os.IsNotExist(err):
		ancestor, aerr := existingAncestor(path)
		if aerr != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, aerr)}
		}
		if err := unix.Access(ancestor, unix.W_OK|unix.X_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, ancestor, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
}

// CheckSameDevice reports whether src and dest share a filesystem, which
// hardlinks require. With the copy policy a mismatch passes with a note.
func CheckSameDevice(src, dest, crossDevice string) Result {
	const name = "Same filesystem"

	srcDev, err := deviceOf(src)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("error: %v", err)}
	}
	target, err := existingAncestor(dest)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("error: %v", err)}
	}
	destDev, err := deviceOf(target)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("error: %v", err)}
	}
	if srcDev == destDev {
		return Result{Name: name, Passed: true, Detail: "hardlinks possible"}
	}
	if crossDevice == config.CrossDeviceCopy {
		return Result{Name: name, Passed: true, Detail: "different filesystems (files will be copied)"}
	}
	return Result{Name: name, Detail: "different filesystems (hardlinks impossible; set library.cross_device = \"copy\")"}
}

// CheckSystemDeps evaluates the external binaries required by cfg.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(deps.Requirements(cfg))
}

func dependencyResult(name string, available, optional bool, path, detail string) Result {
	switch {
	case available:
		return Result{Name: name, Passed: true, Detail: path}
	case optional:
		return Result{Name: name, Passed: true, Detail: detail + " (optional)"}
	default:
		return Result{Name: name, Detail: detail}
	}
}

func deviceOf(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return uint64(st.Dev), nil
}

// existingAncestor returns path itself or its closest parent that exists.
func existingAncestor(path string) (string, error) {
	current, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(current); err == nil {
			return current, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing ancestor for %s", path)
		}
		current = parent
	}
}
