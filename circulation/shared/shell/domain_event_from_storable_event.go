package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/eventstore"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	payload := storableEvent.PayloadJSON

	switch storableEvent.EventType {
	case core.BookAddedToCatalogEventType:
		return unmarshal[core.BookAddedToCatalog](payload)
	case core.BookDetailsEditedEventType:
		return unmarshal[core.BookDetailsEdited](payload)
	case core.BookStockAdjustedEventType:
		return unmarshal[core.BookStockAdjusted](payload)
	case core.BookRemovedFromCatalogEventType:
		return unmarshal[core.BookRemovedFromCatalog](payload)

	case core.MemberRegisteredEventType:
		return unmarshal[core.MemberRegistered](payload)
	case core.MemberDetailsUpdatedEventType:
		return unmarshal[core.MemberDetailsUpdated](payload)
	case core.MemberRoleChangedEventType:
		return unmarshal[core.MemberRoleChanged](payload)
	case core.LibraryCardIssuedEventType:
		return unmarshal[core.LibraryCardIssued](payload)
	case core.MemberRemovedEventType:
		return unmarshal[core.MemberRemoved](payload)

	case core.BookReservedEventType:
		return unmarshal[core.BookReserved](payload)
	case core.ReservationCancelledEventType:
		return unmarshal[core.ReservationCancelled](payload)
	case core.ReservationFulfilledEventType:
		return unmarshal[core.ReservationFulfilled](payload)

	case core.BookIssuedEventType:
		return unmarshal[core.BookIssued](payload)
	case core.BorrowRenewedEventType:
		return unmarshal[core.BorrowRenewed](payload)
	case core.BookReturnedEventType:
		return unmarshal[core.BookReturned](payload)
	case core.FinePaidEventType:
		return unmarshal[core.FinePaid](payload)

	case core.FeedbackSubmittedEventType:
		return unmarshal[core.FeedbackSubmitted](payload)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshal[E core.DomainEvent](payload []byte) (core.DomainEvent, error) {
	event := new(E)

	if err := jsoniter.ConfigFastest.Unmarshal(payload, event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *event, nil
}
