package config

import (
	"log"
	"os"
	"sync"
)

// StorageConfig selects the candidate store backend: "file" keeps records in
// one JSON array on disk, "postgres" uses the document-style table.
type StorageConfig struct {
	Driver      string
	DataFile    string
	LLMProvider string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		driver := os.Getenv("STORAGE_DRIVER")
		if driver == "" {
			driver = "file"
			log.Printf("Warning: STORAGE_DRIVER not set, defaulting to %s", driver)
		}
		dataFile := os.Getenv("DATA_FILE")
		if dataFile == "" {
			dataFile = "data.json"
		}
		provider := os.Getenv("LLM_PROVIDER")
		if provider == "" {
			provider = "gemini"
		}
		storageConfig = &StorageConfig{
			Driver:      driver,
			DataFile:    dataFile,
			LLMProvider: provider,
		}
	})
	return storageConfig
}
