package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFetchIssued      EventType = "FetchIssued"
	EventFetchSettled     EventType = "FetchSettled"
	EventFetchFailed      EventType = "FetchFailed"
	EventSelectionChanged EventType = "SelectionChanged"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FetchIssuedEvent is emitted when a lookup is started
type FetchIssuedEvent struct {
	Query      string
	Generation uint64
}

func (e FetchIssuedEvent) Type() EventType { return EventFetchIssued }

// FetchSettledEvent is emitted when the current lookup completes successfully
type FetchSettledEvent struct {
	Query      string
	Generation uint64
	Count      int
}

func (e FetchSettledEvent) Type() EventType { return EventFetchSettled }

// FetchFailedEvent is emitted when the current lookup fails
type FetchFailedEvent struct {
	Query      string
	Generation uint64
	Message    string
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// SelectionChangedEvent is emitted when a candidate is committed
type SelectionChangedEvent struct {
	Candidate Candidate
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	Default bool // no file existed
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
