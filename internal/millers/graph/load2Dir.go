package graph

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// LoadToDir writes jsonld under dir, creating any directories the object name implies
func LoadToDir(jsonld []byte, dir, objectName string) (string, error) {
	path := filepath.Join(dir, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory for %s: %w", objectName, err)
	}
	if err := os.WriteFile(path, jsonld, 0o644); err != nil {
		return "", err
	}
	log.Trace("Wrote ", path, " Size ", len(jsonld))
	return path, nil
}
