package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
	jsoniter "github.com/json-iterator/go"
	logger "github.com/multiversx/mx-chain-logger-go"
)

const filePermissions = 0644

var log = logger.GetOrCreate("settings")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fileStore struct {
	path string
}

// NewFileStore creates a settings store backed by the JSON file found at the provided path
func NewFileStore(path string) (*fileStore, error) {
	if len(path) == 0 {
		return nil, errEmptyPath
	}

	return &fileStore{
		path: path,
	}, nil
}

// Load reads the application settings. A missing file yields the default settings.
func (store *fileStore) Load() (common.ApplicationSettings, error) {
	data, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("settings file not found, using defaults", "path", store.path)
		return common.DefaultApplicationSettings(), nil
	}
	if err != nil {
		return common.ApplicationSettings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := common.DefaultApplicationSettings()
	err = json.Unmarshal(data, &settings)
	if err != nil {
		return common.ApplicationSettings{}, fmt.Errorf("%w: %s", errMalformedSettings, err.Error())
	}

	return settings, nil
}

// Save overwrites the whole settings document. The content is written to a temporary file in the same
// directory that is then renamed over the target.
func (store *fileStore) Save(settings common.ApplicationSettings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(store.path)
	err = os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(store.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary settings file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	_, err = tmp.Write(data)
	if err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	err = os.Chmod(tmpName, filePermissions)
	if err != nil {
		return err
	}

	err = os.Rename(tmpName, store.path)
	if err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	log.Debug("settings saved", "path", store.path)

	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (store *fileStore) IsInterfaceNil() bool {
	return store == nil
}
