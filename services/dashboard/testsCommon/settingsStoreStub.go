package testsCommon

import "github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"

// SettingsStoreStub -
type SettingsStoreStub struct {
	LoadHandler func() (common.ApplicationSettings, error)
	SaveHandler func(settings common.ApplicationSettings) error
}

// Load -
func (stub *SettingsStoreStub) Load() (common.ApplicationSettings, error) {
	if stub.LoadHandler != nil {
		return stub.LoadHandler()
	}

	return common.DefaultApplicationSettings(), nil
}

// Save -
func (stub *SettingsStoreStub) Save(settings common.ApplicationSettings) error {
	if stub.SaveHandler != nil {
		return stub.SaveHandler(settings)
	}

	return nil
}

// IsInterfaceNil -
func (stub *SettingsStoreStub) IsInterfaceNil() bool {
	return stub == nil
}
