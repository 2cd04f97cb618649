package repository

import (
	"encoding/json"

	"github.com/campushub/submission-service/internal/models"
)

// JSONB column helpers. Empty bags are stored as "[]" so scans never see SQL
// NULL for the collection columns.

func filesToJSON(files []models.FileRef) ([]byte, error) {
	if files == nil {
		files = []models.FileRef{}
	}
	return json.Marshal(files)
}

func filesFromJSON(data []byte) ([]models.FileRef, error) {
	var files []models.FileRef
	if len(data) == 0 {
		return files, nil
	}
	err := json.Unmarshal(data, &files)
	return files, err
}

func snapshotsToJSON(snapshots []models.VersionSnapshot) ([]byte, error) {
	if snapshots == nil {
		snapshots = []models.VersionSnapshot{}
	}
	return json.Marshal(snapshots)
}

func snapshotsFromJSON(data []byte) ([]models.VersionSnapshot, error) {
	var snapshots []models.VersionSnapshot
	if len(data) == 0 {
		return snapshots, nil
	}
	err := json.Unmarshal(data, &snapshots)
	return snapshots, err
}

func fileSlotToJSON(file *models.FileRef) ([]byte, error) {
	if file == nil {
		return nil, nil
	}
	return json.Marshal(file)
}

func fileSlotFromJSON(data []byte) (*models.FileRef, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var file models.FileRef
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return &file, nil
}
