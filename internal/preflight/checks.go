package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sys/unix"

	"demoreel/internal/config"
	"demoreel/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
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
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDiskSpace verifies the filesystem holding path has at least minFree
// bytes available.
func CheckDiskSpace(name, path string, minFree uint64) Result {
	usage, err := disk.Usage(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if usage.Free < minFree {
		return Result{Name: name, Detail: fmt.Sprintf("%.1f GiB free, need %.1f GiB", gib(usage.Free), gib(minFree))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%.1f GiB free", gib(usage.Free))}
}

// minAvailableMemory keeps ffmpeg from thrashing mid-render.
const minAvailableMemory = 1 << 30

// CheckMemory verifies enough memory is available for video processing.
func CheckMemory() Result {
	const name = "Available memory"
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("error: %v", err)}
	}
	if vm.Available < minAvailableMemory {
		return Result{Name: name, Detail: fmt.Sprintf("%.1f GiB available, need %.1f GiB", gib(vm.Available), gib(minAvailableMemory))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%.1f GiB available", gib(vm.Available))}
}

func gib(bytes uint64) float64 {
	return float64(bytes) / (1 << 30)
}

// CheckTTS verifies that the ElevenLabs API is reachable and the key is valid.
func CheckTTS(ctx context.Context, baseURL, apiKey string) Result {
	const name = "ElevenLabs TTS"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing base url"}
	}
	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "missing api key"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/v1/voices", nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%v)", err)}
	}
	req.Header.Set("xi-api-key", strings.TrimSpace(apiKey))

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%v)", err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return Result{Name: name, Passed: true, Detail: "API reachable"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return Result{Name: name, Detail: "auth failed (invalid api key)"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%d)", resp.StatusCode)}
	}
}

// CheckTTSFromConfig evaluates TTS readiness from config and connectivity.
func CheckTTSFromConfig(ctx context.Context, cfg *config.Config) Result {
	const name = "ElevenLabs TTS"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if strings.TrimSpace(cfg.TTS.APIKey) == "" {
		return Result{Name: name, Detail: "Missing API key (set ELEVENLABS_API_KEY)"}
	}
	return CheckTTS(ctx, cfg.TTS.BaseURL, cfg.TTS.APIKey)
}

// CheckSystemDeps evaluates the external binaries a render requires. Both
// the pipeline and the CLI status command use this to avoid duplicating the
// requirements list.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return []deps.Status{
		deps.CheckMediaTool("FFmpeg", cfg.FFmpegBinary(), "Required for audio placement and editing"),
		deps.CheckMediaTool("FFprobe", cfg.FFprobeBinary(), "Required for media inspection"),
	}
}
