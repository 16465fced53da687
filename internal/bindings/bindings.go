//go:build !ios && !android && (amd64 || arm64)

// Package bindings handles loading the VDPAU and Xlib shared libraries
// with purego.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

// ErrNotLoaded is returned when native functions are called before Load().
var ErrNotLoaded = errors.New("vdpva: native libraries not loaded; call vdpva.Open first")

// ErrLibraryNotFound is returned when a required library cannot be found.
var ErrLibraryNotFound = errors.New("vdpva: library not found")

// Library handles
var (
	libX11   uintptr
	libVDPAU uintptr

	loaded   bool
	loadOnce sync.Once
	loadErr  error

	// extraPath is searched before the system paths.
	extraPath string
)

// SetLibraryPath adds dir in front of the library search paths.
// It must be called before Load to have any effect.
func SetLibraryPath(dir string) {
	extraPath = dir
}

// IsLoaded returns true if the libraries have been successfully loaded.
func IsLoaded() bool {
	return loaded
}

// Load loads libX11 and libvdpau.
// It is safe to call multiple times; subsequent calls are no-ops.
func Load() error {
	loadOnce.Do(func() {
		loadErr = doLoad()
		if loadErr == nil {
			loaded = true
		}
	})
	return loadErr
}

func doLoad() error {
	var err error

	// libvdpau's X11 winsys needs Xlib symbols resolvable globally.
	libX11, err = loadLibrary("X11", []int{6})
	if err != nil {
		return fmt.Errorf("loading libX11: %w", err)
	}

	libVDPAU, err = loadLibrary("vdpau", []int{1})
	if err != nil {
		return fmt.Errorf("loading libvdpau: %w", err)
	}
	return nil
}

// candidates lists the paths tried for a library, most specific first:
// versioned then unversioned names in every search path, then bare names
// left to the dynamic loader.
func candidates(name string, versions []int) []string {
	names := make([]string, 0, len(versions)+1)
	for _, ver := range versions {
		names = append(names, LibraryName(name, ver))
	}
	names = append(names, LibraryName(name, 0))

	var out []string
	for _, dir := range LibrarySearchPaths() {
		for _, n := range names {
			out = append(out, filepath.Join(dir, n))
		}
	}
	return append(out, names...)
}

// loadLibrary opens the first candidate of name that loads.
func loadLibrary(name string, versions []int) (uintptr, error) {
	for _, path := range candidates(name, versions) {
		if lib, err := tryOpen(path); err == nil {
			return lib, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// tryOpen attempts to open a library with RTLD_NOW | RTLD_GLOBAL.
func tryOpen(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// LibraryName returns the platform-specific library filename.
// If version is 0, returns the unversioned library name.
//
//	LibraryName("vdpau", 1) -> "libvdpau.so.1"
func LibraryName(name string, version int) string {
	if runtime.GOOS == "darwin" {
		if version > 0 {
			return fmt.Sprintf("lib%s.%d.dylib", name, version)
		}
		return "lib" + name + ".dylib"
	}
	if version > 0 {
		return fmt.Sprintf("lib%s.so.%d", name, version)
	}
	return "lib" + name + ".so"
}

// FindLibrary returns the first existing file among the candidates for
// name. Bare names are not resolved. This is useful for diagnostics.
func FindLibrary(name string, versions []int) (string, error) {
	for _, path := range candidates(name, versions) {
		if !filepath.IsAbs(path) {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// LibrarySearchPaths returns the directories searched for libraries.
func LibrarySearchPaths() []string {
	var paths []string
	if extraPath != "" {
		paths = append(paths, extraPath)
	}
	if ldPath := os.Getenv("LD_LIBRARY_PATH"); ldPath != "" {
		paths = append(paths, filepath.SplitList(ldPath)...)
	}

	switch runtime.GOOS {
	case "linux":
		paths = append(paths,
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib/aarch64-linux-gnu",
			"/usr/lib64",
			"/usr/local/lib",
			"/usr/lib",
			"/lib/x86_64-linux-gnu",
			"/lib",
		)
	case "freebsd", "openbsd", "netbsd":
		paths = append(paths,
			"/usr/local/lib",
			"/usr/X11R6/lib",
			"/usr/lib",
		)
	case "darwin":
		// XQuartz
		paths = append(paths, "/opt/X11/lib")
	}
	return paths
}

// LibX11 returns the Xlib library handle.
func LibX11() uintptr {
	return libX11
}

// LibVDPAU returns the libvdpau library handle.
func LibVDPAU() uintptr {
	return libVDPAU
}
