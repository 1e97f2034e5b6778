package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// AlternativesGraph returns ids of resources connected to a resource by
// ALTERNATIVE_OF edges, strongest first.
type AlternativesGraph interface {
	AlternativeIDs(ctx context.Context, resourceID string, limit int) ([]string, error)
}

const alternativesQuery = `
	MATCH (r:Resource {id: $resourceId})-[e:ALTERNATIVE_OF]-(alt:Resource)
	WHERE alt.id <> $resourceId
	RETURN DISTINCT alt.id AS id, coalesce(e.weight, 1.0) AS weight
	ORDER BY weight DESC, id
	LIMIT $limit`

// Neo4jAlternativesGraph reads alternatives from Neo4j.
type Neo4jAlternativesGraph struct {
	driver neo4j.DriverWithContext
}

func NewNeo4jAlternativesGraph(driver neo4j.DriverWithContext) *Neo4jAlternativesGraph {
	return &Neo4jAlternativesGraph{driver: driver}
}

func (g *Neo4jAlternativesGraph) AlternativeIDs(ctx context.Context, resourceID string, limit int) ([]string, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, alternativesQuery, map[string]interface{}{
		"resourceId": resourceID,
		"limit":      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query alternatives graph: %w", err)
	}

	var ids []string
	for result.Next(ctx) {
		record := result.Record()
		id, ok := record.Values[0].(string)
		if !ok || id == "" {
			continue
		}
		ids = append(ids, id)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read alternatives graph: %w", err)
	}
	return ids, nil
}
