package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// CheckMediaTool reports the ffmpeg/ffprobe binary a media operation will
// execute. A configured command wins when it resolves; otherwise a copy that
// sits next to the running executable is preferred (the lookup order of
// ffmpeg-static style bundles) before falling back to PATH.
func CheckMediaTool(name, configured, description string) Status {
	result := Status{
		Name:        name,
		Description: description,
	}

	toolName := strings.ToLower(name)
	if configured = strings.TrimSpace(configured); configured != "" && configured != toolName {
		if resolved, err := exec.LookPath(configured); err == nil {
			result.Command = resolved
			result.Available = true
			return result
		}
		result.Command = configured
		result.Detail = fmt.Sprintf("configured binary %q not found", configured)
		return result
	}

	if exe, err := os.Executable(); err == nil {
		candidate := sidecarCandidate(exe, toolName)
		if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
			result.Command = candidate
			result.Available = true
			return result
		}
	}

	if resolved, err := exec.LookPath(toolName); err == nil {
		result.Command = resolved
		result.Available = true
		return result
	}

	result.Command = toolName
	result.Detail = fmt.Sprintf("binary %q not found", toolName)
	return result
}

func sidecarCandidate(exePath, name string) string {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(filepath.Dir(exePath), name)
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
