package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockMetadataClient is a mock implementation of the MetadataClient interface for testing.
type MockMetadataClient struct {
	mock.Mock
}

var _ MetadataClient = &MockMetadataClient{} // Compile-time check

// GetSampleRecord implements the contract.MetadataClient interface.
func (m *MockMetadataClient) GetSampleRecord(ctx context.Context, sampleID string) (*SampleRecord, error) {
	ret := m.Called(ctx, sampleID)
	record, _ := ret.Get(0).(*SampleRecord)
	return record, ret.Error(1)
}
