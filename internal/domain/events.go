package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchIssued         EventType = "SearchIssued"
	EventSuggestionsUpdated   EventType = "SuggestionsUpdated"
	EventSearchFailed         EventType = "SearchFailed"
	EventNavigated            EventType = "Navigated"
	EventLoggedIn             EventType = "LoggedIn"
	EventLoggedOut            EventType = "LoggedOut"
	EventEstablishmentCreated EventType = "EstablishmentCreated"
	EventReviewSubmitted      EventType = "ReviewSubmitted"
	EventError                EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchIssuedEvent is emitted when a suggestion request leaves the client
type SearchIssuedEvent struct {
	Seq   uint64
	Query string
}

func (e SearchIssuedEvent) Type() EventType { return EventSearchIssued }

// SuggestionsUpdatedEvent is emitted when a fresh suggestion page replaces the old one
type SuggestionsUpdatedEvent struct {
	Seq   uint64
	Count int
	Total int
}

func (e SuggestionsUpdatedEvent) Type() EventType { return EventSuggestionsUpdated }

// SearchFailedEvent is emitted when a suggestion request fails
type SearchFailedEvent struct {
	Seq uint64
	Err error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// NavigatedEvent is emitted when the active screen changes
type NavigatedEvent struct {
	From string
	To   string
}

func (e NavigatedEvent) Type() EventType { return EventNavigated }

// LoggedInEvent is emitted when a token is stored
type LoggedInEvent struct {
	User *UserProfile // nil until the profile has been fetched
}

func (e LoggedInEvent) Type() EventType { return EventLoggedIn }

// LoggedOutEvent is emitted when the token is cleared
type LoggedOutEvent struct{}

func (e LoggedOutEvent) Type() EventType { return EventLoggedOut }

// EstablishmentCreatedEvent is emitted after a successful registration
type EstablishmentCreatedEvent struct {
	Establishment EstablishmentSummary
}

func (e EstablishmentCreatedEvent) Type() EventType { return EventEstablishmentCreated }

// ReviewSubmittedEvent is emitted after a review is accepted
type ReviewSubmittedEvent struct {
	EstablishmentID int64
	ReviewID        int64
}

func (e ReviewSubmittedEvent) Type() EventType { return EventReviewSubmitted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
