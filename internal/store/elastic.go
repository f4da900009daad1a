// internal/store/elastic.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/xeipuuv/gojsonschema"

	apperrors "talent-recommender/internal/common/errors"
	"talent-recommender/internal/common/logger"
	"talent-recommender/internal/common/metrics"
	"talent-recommender/internal/models"
	"talent-recommender/pkg/schema"
)

// Index names per content kind.
var contentIndices = map[models.ContentKind]string{
	models.KindJob:     "jobs",
	models.KindPost:    "posts",
	models.KindStartup: "startups",
}

// ElasticStore is a read-only content store backed by the search index.
// It implements ranker.ContentStore and is used where the candidate
// pool is served from Elasticsearch instead of Postgres.
type ElasticStore struct {
	client *elasticsearch.Client
	schema *gojsonschema.Schema
	log    logger.Logger
}

// NewElasticStore wraps an existing client. Documents that fail the
// content schema are skipped and counted rather than failing the pool.
func NewElasticStore(client *elasticsearch.Client, log logger.Logger) (*ElasticStore, error) {
	compiled, err := schema.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile content schema: %w", err)
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &ElasticStore{
		client: client,
		schema: compiled,
		log:    log.WithFields(map[string]interface{}{"component": "elastic_store"}),
	}, nil
}

type contentDoc struct {
	ID                   string   `json:"id"`
	SourceID             string   `json:"sourceId"`
	Title                string   `json:"title"`
	Requirements         []string `json:"requirements"`
	Description          string   `json:"description"`
	Tags                 []string `json:"tags"`
	Views                int64    `json:"views"`
	Likes                int64    `json:"likes"`
	Applications         int64    `json:"applications"`
	Saves                int64    `json:"saves"`
	CreatedAt            string   `json:"createdAt"`
	Location             string   `json:"location"`
	TargetedAcademicYear int      `json:"targetedAcademicYear"`
	Verified             bool     `json:"verified"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// ListCandidates fetches the newest active documents for one kind.
func (s *ElasticStore) ListCandidates(ctx context.Context, kind models.ContentKind, limit int) ([]models.ContentItem, error) {
	index, ok := contentIndices[kind]
	if !ok {
		return nil, apperrors.NewUnknownContentTypeError(string(kind))
	}

	query := map[string]interface{}{
		"size": limit,
		"sort": []map[string]interface{}{
			{"createdAt": map[string]string{"order": "desc"}},
		},
		"query": map[string]interface{}{
			"term": map[string]interface{}{"status": "active"},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, apperrors.NewCollaboratorUnavailableError("elasticsearch", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, apperrors.NewCollaboratorUnavailableError("elasticsearch",
			fmt.Errorf("search returned %s", res.Status()))
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperrors.NewCollaboratorUnavailableError("elasticsearch", err)
	}
	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, apperrors.NewCollaboratorUnavailableError("elasticsearch", err)
	}

	items := make([]models.ContentItem, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		item, ok := s.decodeHit(hit.Source, kind)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// GetContent fetches one document by ID.
func (s *ElasticStore) GetContent(ctx context.Context, kind models.ContentKind, contentID string) (*models.ContentItem, error) {
	index, ok := contentIndices[kind]
	if !ok {
		return nil, apperrors.NewUnknownContentTypeError(string(kind))
	}

	res, err := s.client.Get(index, contentID, s.client.Get.WithContext(ctx))
	if err != nil {
		return nil, apperrors.NewCollaboratorUnavailableError("elasticsearch", err)
	}
	defer res.Body.Close()
	if res.StatusCode == 404 {
		return nil, apperrors.NewContentNotFoundError(string(kind), contentID)
	}
	if res.IsError() {
		return nil, apperrors.NewCollaboratorUnavailableError("elasticsearch",
			fmt.Errorf("get returned %s", res.Status()))
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperrors.NewCollaboratorUnavailableError("elasticsearch", err)
	}
	var doc struct {
		Source json.RawMessage `json:"_source"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.NewCollaboratorUnavailableError("elasticsearch", err)
	}

	item, ok := s.decodeHit(doc.Source, kind)
	if !ok {
		return nil, apperrors.NewDataQualityError(
			fmt.Sprintf("document %s failed schema validation", contentID))
	}
	return &item, nil
}

// decodeHit validates one document against the schema and converts it.
// Invalid documents are counted and skipped.
func (s *ElasticStore) decodeHit(source json.RawMessage, kind models.ContentKind) (models.ContentItem, bool) {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(source))
	if err != nil || !result.Valid() {
		metrics.DataQualityWarnings.WithLabelValues("elasticsearch").Inc()
		fields := map[string]interface{}{"index": string(kind)}
		if err != nil {
			fields["error"] = err.Error()
		} else if len(result.Errors()) > 0 {
			fields["violation"] = result.Errors()[0].String()
		}
		s.log.Warn("skipping document that failed schema validation", fields)
		return models.ContentItem{}, false
	}

	var doc contentDoc
	if err := json.Unmarshal(source, &doc); err != nil {
		metrics.DataQualityWarnings.WithLabelValues("elasticsearch").Inc()
		s.log.Warn("skipping undecodable document", map[string]interface{}{
			"index": string(kind),
			"error": err.Error(),
		})
		return models.ContentItem{}, false
	}

	createdAt, err := time.Parse(time.RFC3339, doc.CreatedAt)
	if err != nil {
		metrics.DataQualityWarnings.WithLabelValues("elasticsearch").Inc()
		s.log.Warn("skipping document with unparseable timestamp", map[string]interface{}{
			"index":     string(kind),
			"contentId": doc.ID,
		})
		return models.ContentItem{}, false
	}

	return models.ContentItem{
		ID:           doc.ID,
		Kind:         kind,
		SourceID:     doc.SourceID,
		Title:        doc.Title,
		Requirements: doc.Requirements,
		Description:  doc.Description,
		Tags:         doc.Tags,
		Engagement: models.EngagementCounters{
			Views:        doc.Views,
			Likes:        doc.Likes,
			Applications: doc.Applications,
			Saves:        doc.Saves,
		},
		CreatedAt:            createdAt,
		Location:             doc.Location,
		TargetedAcademicYear: doc.TargetedAcademicYear,
		Verified:             doc.Verified,
	}, true
}
