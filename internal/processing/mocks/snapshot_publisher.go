package mocks

// MockSnapshotPublisher is a test double for publish.SSHPublisher
type MockSnapshotPublisher struct {
	// Errors to return
	PublishJSONError error
	DisconnectError  error

	// Call tracking
	PublishJSONCalls int
	DisconnectCalls  int

	PublishJSONCalledWith struct {
		Filename string
		Payload  any
	}
}

// NewMockSnapshotPublisher creates a new mock publisher
func NewMockSnapshotPublisher() *MockSnapshotPublisher {
	return &MockSnapshotPublisher{}
}

func (m *MockSnapshotPublisher) PublishJSON(filename string, payload any) error {
	m.PublishJSONCalls++
	m.PublishJSONCalledWith.Filename = filename
	m.PublishJSONCalledWith.Payload = payload
	return m.PublishJSONError
}

func (m *MockSnapshotPublisher) Disconnect() error {
	m.DisconnectCalls++
	return m.DisconnectError
}
