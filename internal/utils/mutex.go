package utils

import "sync"

var gdalMu sync.Mutex

// ExecuteWithGDALMutex serializes raster-driver calls; the underlying GDAL
// handles are not safe for concurrent use from the batch worker pool.
func ExecuteWithGDALMutex(fn func()) {
	gdalMu.Lock()
	defer gdalMu.Unlock()
	fn()
}
