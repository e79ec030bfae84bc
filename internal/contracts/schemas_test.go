package contracts

import (
	"encoding/json"
	"testing"
	"time"

	"dar360-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestValidateEvent_ContractSigned(t *testing.T) {
	event := port.DomainEvent{
		Type:       port.EventContractSigned,
		UserID:     uuid.New(),
		OccurredAt: time.Now().UTC(),
		Payload: map[string]interface{}{
			"contract_id": uuid.New().String(),
			"property_id": uuid.New().String(),
			"tenant_name": "Aisha Khan",
			"rent":        95000,
		},
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)

	require.NoError(t, ValidateEvent(port.EventContractSigned, port.EventVersion, body))
}

func TestValidateEvent_MissingRequiredField(t *testing.T) {
	event := port.DomainEvent{
		Type:       port.EventPropertyCreated,
		UserID:     uuid.New(),
		OccurredAt: time.Now().UTC(),
		Payload: map[string]interface{}{
			"property_id": uuid.New().String(),
			// title, area and rent are required and absent
		},
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)

	require.Error(t, ValidateEvent(port.EventPropertyCreated, port.EventVersion, body))
}

func TestValidateEvent_UnknownSchema(t *testing.T) {
	require.Error(t, ValidateEvent("property.created", "9.9.9", []byte(`{}`)))
	require.Error(t, ValidateEvent("no.such.event", port.EventVersion, []byte(`{}`)))
}

func TestValidateEvent_EverySchemaCompiled(t *testing.T) {
	for _, eventType := range []string{
		port.EventPropertyCreated,
		port.EventViewingScheduled,
		port.EventViewingOutcome,
		port.EventContractSigned,
		port.EventApplicationDecided,
		port.EventMaintenanceUpdated,
	} {
		_, ok := compiledSchemas[eventType+"/"+port.EventVersion]
		require.True(t, ok, "no compiled schema for %s", eventType)
	}
}

func TestEventName(t *testing.T) {
	require.Equal(t, "PropertyCreatedEvent", EventName("property.created"))
	require.Equal(t, "ApplicationDecidedEvent", EventName("application.decided"))
}
