package services

import (
	"encoding/gob"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	cacheVersion = "v1"
	cacheDir     = ".cache"
)

func cacheFilename(salesPath, customersPath string) string {
	key := strings.ReplaceAll(salesPath+"_"+customersPath, "/", "_")
	return fmt.Sprintf("%s/%s_%s.gob", cacheDir, key, cacheVersion)
}

// sourcesUnchangedSince reports whether both CSV files predate the cached
// snapshot, making the cache safe to reuse.
func sourcesUnchangedSince(loadedAt time.Time, paths ...string) bool {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.ModTime().After(loadedAt) {
			return false
		}
	}
	return true
}

func (a *Analytics) saveToCache(salesPath, customersPath string, snap *Snapshot) error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return err
	}

	file, err := os.Create(cacheFilename(salesPath, customersPath))
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewEncoder(file).Encode(snap)
}

func (a *Analytics) loadFromCache(salesPath, customersPath string) (*Snapshot, error) {
	file, err := os.Open(cacheFilename(salesPath, customersPath))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var snap Snapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
