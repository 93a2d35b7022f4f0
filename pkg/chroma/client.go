package chroma

import (
	"context"
	"fmt"
	"log"
	"strings"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"

	"learnlog-backend/pkg/config"
)

// Collection names. The two collections are disjoint namespaces: a search
// against one never returns points from the other.
const (
	LogCollection     = "log_embeddings"
	ConceptCollection = "concept_embeddings"
)

// LogPayload is the metadata stored alongside a daily-log vector.
type LogPayload struct {
	LogID    string   `json:"log_id"`
	LogDate  string   `json:"log_date"`
	Summary  string   `json:"summary"`
	Concepts []string `json:"concepts"`
}

// ConceptPayload is the metadata stored alongside a concept vector.
type ConceptPayload struct {
	ConceptID  string `json:"concept_id"`
	Name       string `json:"name"`
	Definition string `json:"definition"`
	Category   string `json:"category"`
}

// LogHit is one nearest-neighbor result from the log collection.
type LogHit struct {
	Score   float64
	Payload LogPayload
}

// ConceptHit is one nearest-neighbor result from the concept collection.
type ConceptHit struct {
	Score   float64
	Payload ConceptPayload
}

// VectorStore wraps the Chroma client with the two collections used for
// semantic search. All vectors are computed by the caller; Chroma only stores
// and searches them.
type VectorStore struct {
	client   chroma.Client
	logs     chroma.Collection
	concepts chroma.Collection
}

// NewVectorStore connects to Chroma (cloud when an API key is configured,
// local otherwise) and ensures both collections exist. Collection creation is
// idempotent: re-creating an existing collection is a no-op.
func NewVectorStore(cfg *config.Config) (*VectorStore, error) {
	var client chroma.Client
	var err error

	if cfg.ChromaAPIKey != "" && cfg.ChromaDatabase != "" && cfg.ChromaTenant != "" {
		client, err = chroma.NewHTTPClient(
			chroma.WithBaseURL(chroma.ChromaCloudEndpoint),
			chroma.WithCloudAPIKey(cfg.ChromaAPIKey),
			chroma.WithDatabaseAndTenant(cfg.ChromaDatabase, cfg.ChromaTenant),
		)
	} else if cfg.ChromaAPIKey != "" {
		client, err = chroma.NewHTTPClient(
			chroma.WithBaseURL(chroma.ChromaCloudEndpoint),
			chroma.WithCloudAPIKey(cfg.ChromaAPIKey),
		)
	} else {
		client, err = chroma.NewHTTPClient(
			chroma.WithBaseURL(cfg.ChromaURL),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Chroma client: %w", err)
	}

	ctx := context.Background()
	space := chroma.NewMetadataFromMap(map[string]interface{}{"hnsw:space": "cosine"})

	logs, err := client.GetOrCreateCollection(ctx, LogCollection,
		chroma.WithCollectionMetadataCreate(space))
	if err != nil {
		return nil, fmt.Errorf("failed to create collection %s: %w", LogCollection, err)
	}

	concepts, err := client.GetOrCreateCollection(ctx, ConceptCollection,
		chroma.WithCollectionMetadataCreate(space))
	if err != nil {
		return nil, fmt.Errorf("failed to create collection %s: %w", ConceptCollection, err)
	}

	log.Printf("Initialized Chroma vector store with collections: %s, %s", LogCollection, ConceptCollection)

	return &VectorStore{client: client, logs: logs, concepts: concepts}, nil
}

// UpsertLog inserts or replaces the vector point keyed by the log id.
func (s *VectorStore) UpsertLog(ctx context.Context, logID string, vector []float32, payload LogPayload) error {
	metadata, err := chroma.NewDocumentMetadataFromMap(map[string]interface{}{
		"log_id":   payload.LogID,
		"log_date": payload.LogDate,
		"summary":  payload.Summary,
		// Chroma metadata values are scalars; the list round-trips as CSV
		"concepts": strings.Join(payload.Concepts, ","),
	})
	if err != nil {
		return fmt.Errorf("failed to create metadata: %w", err)
	}

	err = s.logs.Upsert(
		ctx,
		chroma.WithIDs(chroma.DocumentID(logID)),
		chroma.WithEmbeddings(embeddings.NewEmbeddingFromFloat32(vector)),
		chroma.WithMetadatas(metadata),
		chroma.WithTexts(payload.Summary),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert log embedding: %w", err)
	}

	return nil
}

// UpsertConcept inserts or replaces the vector point keyed by the concept id.
func (s *VectorStore) UpsertConcept(ctx context.Context, conceptID string, vector []float32, payload ConceptPayload) error {
	metadata, err := chroma.NewDocumentMetadataFromMap(map[string]interface{}{
		"concept_id": payload.ConceptID,
		"name":       payload.Name,
		"definition": payload.Definition,
		"category":   payload.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to create metadata: %w", err)
	}

	err = s.concepts.Upsert(
		ctx,
		chroma.WithIDs(chroma.DocumentID(conceptID)),
		chroma.WithEmbeddings(embeddings.NewEmbeddingFromFloat32(vector)),
		chroma.WithMetadatas(metadata),
		chroma.WithTexts(payload.Name),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert concept embedding: %w", err)
	}

	return nil
}

// SearchLogs returns up to limit nearest log vectors, best match first.
func (s *VectorStore) SearchLogs(ctx context.Context, vector []float32, limit int) ([]LogHit, error) {
	scores, metadatas, err := s.query(ctx, s.logs, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search logs: %w", err)
	}

	hits := make([]LogHit, 0, len(metadatas))
	for i, md := range metadatas {
		payload := LogPayload{
			LogID:   metadataString(md, "log_id"),
			LogDate: metadataString(md, "log_date"),
			Summary: metadataString(md, "summary"),
		}
		if joined := metadataString(md, "concepts"); joined != "" {
			payload.Concepts = strings.Split(joined, ",")
		}
		hits = append(hits, LogHit{Score: scores[i], Payload: payload})
	}
	return hits, nil
}

// SearchConcepts returns up to limit nearest concept vectors, best match first.
func (s *VectorStore) SearchConcepts(ctx context.Context, vector []float32, limit int) ([]ConceptHit, error) {
	scores, metadatas, err := s.query(ctx, s.concepts, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search concepts: %w", err)
	}

	hits := make([]ConceptHit, 0, len(metadatas))
	for i, md := range metadatas {
		hits = append(hits, ConceptHit{
			Score: scores[i],
			Payload: ConceptPayload{
				ConceptID:  metadataString(md, "concept_id"),
				Name:       metadataString(md, "name"),
				Definition: metadataString(md, "definition"),
				Category:   metadataString(md, "category"),
			},
		})
	}
	return hits, nil
}

// query runs a nearest-neighbor search and converts Chroma's cosine distances
// into descending similarity scores (score = 1 - distance).
func (s *VectorStore) query(ctx context.Context, collection chroma.Collection, vector []float32, limit int) ([]float64, []chroma.DocumentMetadata, error) {
	results, err := collection.Query(
		ctx,
		chroma.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(vector)),
		chroma.WithNResults(limit),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query collection: %w", err)
	}

	if results == nil || results.CountGroups() == 0 {
		return nil, nil, nil
	}

	distanceGroups := results.GetDistancesGroups()
	metadataGroups := results.GetMetadatasGroups()
	if len(distanceGroups) == 0 || len(metadataGroups) == 0 {
		return nil, nil, nil
	}

	distances := distanceGroups[0]
	metadatas := metadataGroups[0]

	scores := make([]float64, 0, len(distances))
	for _, d := range distances {
		scores = append(scores, 1-float64(d))
	}

	return scores, metadatas, nil
}

func metadataString(md chroma.DocumentMetadata, key string) string {
	if md == nil {
		return ""
	}
	value, _ := md.GetString(key)
	return value
}
