package postgres_adapter

import (
	"strings"
	"testing"

	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBuildPropertyListQuery_NoFilter(t *testing.T) {
	query, args := buildPropertyListQuery(port.PropertyFilter{})

	require.NotContains(t, query, "WHERE")
	require.Contains(t, query, "ORDER BY p.created_at DESC")
	require.Contains(t, query, "LIMIT $1 OFFSET $2")
	require.Equal(t, []interface{}{defaultListLimit, 0}, args)
}

func TestBuildPropertyListQuery_StatusFilter(t *testing.T) {
	status := domain.PropertyAvailable
	query, args := buildPropertyListQuery(port.PropertyFilter{Status: &status, Limit: 10, Offset: 20})

	require.Contains(t, query, "WHERE p.status = $1")
	require.Contains(t, query, "ORDER BY p.created_at DESC")
	require.Contains(t, query, "LIMIT $2 OFFSET $3")
	require.Equal(t, []interface{}{status, 10, 20}, args)
}

func TestBuildPropertyListQuery_CombinedFilters(t *testing.T) {
	status := domain.PropertyRented
	ownerID := uuid.New()
	agentID := uuid.New()
	area := "Dubai Marina"

	query, args := buildPropertyListQuery(port.PropertyFilter{
		Status:  &status,
		OwnerID: &ownerID,
		AgentID: &agentID,
		Area:    &area,
	})

	require.Contains(t, query, "WHERE p.status = $1 AND p.owner_id = $2 AND p.agent_id = $3 AND p.area = $4")
	require.Contains(t, query, "LIMIT $5 OFFSET $6")
	require.Equal(t, []interface{}{status, ownerID, agentID, area, defaultListLimit, 0}, args)

	// Placeholders line up one-to-one with args.
	require.Equal(t, len(args), strings.Count(query, "$"))

	// Filtering never displaces the ordering contract.
	require.Less(t, strings.Index(query, "WHERE"), strings.Index(query, "ORDER BY p.created_at DESC"))
}

func TestNormalizeLimit(t *testing.T) {
	require.Equal(t, defaultListLimit, normalizeLimit(0))
	require.Equal(t, defaultListLimit, normalizeLimit(-5))
	require.Equal(t, 25, normalizeLimit(25))
}
