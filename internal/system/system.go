package system

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// ImageExtensions lists the file types the source loader can decode.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp", ".hdr", ".pdf"}

// DefaultWorkers возвращает число логических CPU, либо GOMAXPROCS,
// если платформу не удалось опросить.
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// AvailableMemory reports the memory the OS considers available, in bytes.
func AvailableMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// SequenceBytes is the size of an (n, h, w, c) float32 batch.
func SequenceBytes(n, width, height, channels int) uint64 {
	return uint64(n) * uint64(width) * uint64(height) * uint64(channels) * 4
}

// CheckMemory returns an error when need exceeds the available memory.
// An unknown amount of available memory is not an error.
func CheckMemory(need uint64) error {
	avail, err := AvailableMemory()
	if err != nil {
		return nil
	}
	if need > avail {
		return fmt.Errorf("output needs %s but only %s is available", FormatBytes(need), FormatBytes(avail))
	}
	return nil
}

func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FindLatestImage находит самый свежий поддерживаемый файл в dir.
func FindLatestImage(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !isImage(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no images found in %s", dir)
	}

	return latestFile, nil
}

func isImage(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range ImageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
