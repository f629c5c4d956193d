package reports

import (
	"context"
	"fmt"
	"path"

	"dopingplot/internal/logger"
	"dopingplot/internal/storage"
)

// StorageOrchestrator handles the business logic of storing generated files
type StorageOrchestrator struct {
	storage storage.StorageClient
	log     *logger.Logger
}

// NewStorageOrchestrator creates a new storage orchestrator
func NewStorageOrchestrator(storage storage.StorageClient) *StorageOrchestrator {
	return &StorageOrchestrator{
		storage: storage,
		log:     logger.GetGlobalLogger().WithComponent("reports"),
	}
}

// StoreAllFiles writes every artifact below the report folder. The index
// page is written last; a failure leaves the report unlisted.
func (so *StorageOrchestrator) StoreAllFiles(ctx context.Context, files *GeneratedFiles) error {
	for _, name := range files.Names() {
		objectPath := path.Join(files.FolderPath, name)
		if err := so.storage.StoreFile(ctx, objectPath, files.Files[name]); err != nil {
			return fmt.Errorf("failed to store %s: %w", name, err)
		}
	}

	so.log.Info("Report stored", map[string]interface{}{
		"folder": files.FolderPath,
		"files":  len(files.Files),
	})
	return nil
}
