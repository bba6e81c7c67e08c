package testsCommon

import (
	"context"
	"time"
)

// CacherStub -
type CacherStub struct {
	GetHandler    func(ctx context.Context, key string, dest interface{}) (bool, error)
	SetHandler    func(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	RemoveHandler func(ctx context.Context, key string) error
	CloseHandler  func() error
}

// Get -
func (stub *CacherStub) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if stub.GetHandler != nil {
		return stub.GetHandler(ctx, key, dest)
	}

	return false, nil
}

// Set -
func (stub *CacherStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if stub.SetHandler != nil {
		return stub.SetHandler(ctx, key, value, ttl)
	}

	return nil
}

// Remove -
func (stub *CacherStub) Remove(ctx context.Context, key string) error {
	if stub.RemoveHandler != nil {
		return stub.RemoveHandler(ctx, key)
	}

	return nil
}

// Close -
func (stub *CacherStub) Close() error {
	if stub.CloseHandler != nil {
		return stub.CloseHandler()
	}

	return nil
}

// IsInterfaceNil -
func (stub *CacherStub) IsInterfaceNil() bool {
	return stub == nil
}
