package director

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const planPrefix = "plan_"

// GeneratePlanPath создает имя файла плана с временной меткой внутри dir.
func GeneratePlanPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s%s.yaml", planPrefix, timestamp))
}

// FindLatestPlan finds the most recently written plan file in dir.
func FindLatestPlan(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read plan directory: %w", err)
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	var plans []candidate
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, planPrefix) || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		plans = append(plans, candidate{filepath.Join(dir, name), info.ModTime()})
	}

	if len(plans) == 0 {
		return "", fmt.Errorf("no plan files found in %s", dir)
	}

	// Сортировка по времени изменения (новые первыми)
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].mod.After(plans[j].mod)
	})

	return plans[0].path, nil
}
