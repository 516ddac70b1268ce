// Package elastic keeps the inquiry full-text index in Elasticsearch.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

const indexProperties = `{
  "properties": {
    "project":     {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
    "consumer":    {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
    "product":     {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
    "consultant":  {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
    "status":      {"type": "keyword"},
    "assigned_to": {"type": "keyword"},
    "created_at":  {"type": "date"}
  }
}`

const indexMapping = `{"mappings": ` + indexProperties + `}`

// searchFields mirror the fields the Mongo regex search covers. Substring
// matching runs against their keyword subfields.
var searchFields = []string{"project.keyword", "consumer.keyword", "product.keyword", "consultant.keyword"}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// containsPattern turns term into a wildcard pattern matching it anywhere.
func containsPattern(term string) string {
	return "*" + wildcardEscaper.Replace(term) + "*"
}

// document is the indexed projection of an inquiry.
type document struct {
	Project    string    `json:"project"`
	Consumer   string    `json:"consumer"`
	Product    string    `json:"product"`
	Consultant string    `json:"consultant,omitempty"`
	Status     string    `json:"status"`
	AssignedTo string    `json:"assigned_to,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toDocument(inq *domain.Inquiry) document {
	d := document{
		Project:   inq.Project,
		Consumer:  inq.Consumer.Name,
		Product:   inq.Product.Name,
		Status:    string(inq.Status),
		CreatedAt: inq.CreatedAt,
	}
	if inq.Consultant != nil {
		d.Consultant = inq.Consultant.Name
	}
	if inq.AssignedTo != nil {
		d.AssignedTo = inq.AssignedTo.ID
	}
	return d
}

// InquiryIndex implements ports.InquiryIndex.
type InquiryIndex struct {
	client *elasticsearch.Client
	index  string
}

// NewInquiryIndex connects to the cluster and checks it answers a ping.
func NewInquiryIndex(url, index string) (*InquiryIndex, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := es.Ping()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch ping: %s", res.Status())
	}

	return &InquiryIndex{client: es, index: index}, nil
}

// EnsureIndex creates the index with its mapping when it does not exist
// yet. An existing index gets the mapping merged in; documents written
// before the merge only gain the keyword subfields once they are reindexed.
func (x *InquiryIndex) EnsureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{x.index}}.Do(ctx, x.client)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return x.putMapping(ctx)
	}

	res, err = esapi.IndicesCreateRequest{
		Index: x.index,
		Body:  strings.NewReader(indexMapping),
	}.Do(ctx, x.client)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index: %s", res.String())
	}
	return nil
}

func (x *InquiryIndex) putMapping(ctx context.Context) error {
	res, err := esapi.IndicesPutMappingRequest{
		Index: []string{x.index},
		Body:  strings.NewReader(indexProperties),
	}.Do(ctx, x.client)
	if err != nil {
		return fmt.Errorf("update mapping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("update mapping: %s", res.String())
	}
	return nil
}

func (x *InquiryIndex) Index(ctx context.Context, inq *domain.Inquiry) error {
	body, err := json.Marshal(toDocument(inq))
	if err != nil {
		return fmt.Errorf("encode inquiry document: %w", err)
	}

	res, err := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: inq.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "wait_for",
	}.Do(ctx, x.client)
	if err != nil {
		return fmt.Errorf("index inquiry: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index inquiry: %s", res.String())
	}
	return nil
}

func (x *InquiryIndex) Remove(ctx context.Context, id string) error {
	res, err := esapi.DeleteRequest{
		Index:      x.index,
		DocumentID: id,
		Refresh:    "wait_for",
	}.Do(ctx, x.client)
	if err != nil {
		return fmt.Errorf("remove inquiry: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove inquiry: %s", res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

func (x *InquiryIndex) Search(ctx context.Context, f domain.InquiryFilter) ([]string, int64, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(f)); err != nil {
		return nil, 0, fmt.Errorf("encode query: %w", err)
	}

	res, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(&buf),
		x.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("search inquiries: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, 0, fmt.Errorf("search inquiries: %s", res.String())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}
	ids := make([]string, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, r.Hits.Total.Value, nil
}

// buildQuery expects a normalised filter. A search term matches when any
// search field contains it, ignoring case.
func buildQuery(f domain.InquiryFilter) map[string]any {
	must := []any{}
	if term := strings.TrimSpace(f.Search); term != "" {
		pattern := containsPattern(term)
		should := make([]any, 0, len(searchFields))
		for _, field := range searchFields {
			should = append(should, map[string]any{
				"wildcard": map[string]any{
					field: map[string]any{
						"value":            pattern,
						"case_insensitive": true,
					},
				},
			})
		}
		must = append(must, map[string]any{
			"bool": map[string]any{
				"should":               should,
				"minimum_should_match": 1,
			},
		})
	}

	filter := []any{}
	if f.Status != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"status": string(f.Status)}})
	}
	if f.AssignedTo != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"assigned_to": f.AssignedTo}})
	}

	return map[string]any{
		"from":    f.Skip(),
		"size":    f.Limit,
		"_source": false,
		"query": map[string]any{
			"bool": map[string]any{"must": must, "filter": filter},
		},
		"sort": []any{map[string]any{"created_at": "desc"}},
	}
}
