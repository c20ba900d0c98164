package delivery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/schollz/progressbar/v3"
)

// payload extensions the batch scanner picks up. Headers are resolved from
// their payloads by the loader, so .hdr files are not scheduled on their own.
var batchExtensions = map[string]bool{
	".raw":  true,
	".img":  true,
	".bil":  true,
	".bip":  true,
	".bsq":  true,
	".tif":  true,
	".tiff": true,
}

const batchWorkers = 4

// AnalyzeDirectory runs the pipeline over every supported scene file found
// directly under dir. Scenes are analyzed concurrently; the first failure
// stops the batch after in-flight work drains.
func (p *Pipeline) AnalyzeDirectory(dir string) ([]FieldReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning scene directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if batchExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no supported scene files found in %s", dir)
	}
	sort.Strings(paths)

	var (
		mu          sync.Mutex
		reports     []FieldReport
		progressBar = progressbar.Default(int64(len(paths)), "Analyzing scenes")
	)

	wp := workerpool.New(batchWorkers)
	errChan := make(chan error, 1)
	var stopProcessing sync.Once

	for _, path := range paths {
		scenePath := path
		wp.Submit(func() {
			report, err := p.AnalyzeField(scenePath)
			if err != nil {
				stopProcessing.Do(func() { errChan <- err })
				return
			}

			mu.Lock()
			reports = append(reports, report)
			progressBar.Add(1)
			mu.Unlock()
		})
	}

	wp.StopWait()

	select {
	case err := <-errChan:
		return nil, err
	default:
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].SourcePath < reports[j].SourcePath
	})
	return reports, nil
}
