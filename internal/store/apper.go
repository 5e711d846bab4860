package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// apperClient talks to the hosted Apper record store over its REST API.
type apperClient struct {
	http    *resty.Client
	baseURL string
}

// NewApperClient creates a record-store client for the hosted backend.
//
// "baseURL" is the project API root, "projectID" and "publicKey" are the
// project credentials sent with every request.
func NewApperClient(baseURL, projectID, publicKey string) *apperClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Apper-Project-Id", projectID).
		SetHeader("X-Apper-Public-Key", publicKey)

	return &apperClient{
		http:    client,
		baseURL: baseURL,
	}
}

// envelope is the response wrapper the store puts around every call.
type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Results []envelopeResult `json:"results"`
}

type envelopeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    Fields `json:"data"`
}

// wire shapes for query parameters, mirroring the store's field selector,
// where clause and orderBy formats.
type wireField struct {
	Field struct {
		Name string `json:"Name"`
	} `json:"field"`
}

type wireFilter struct {
	FieldName string `json:"FieldName"`
	Operator  string `json:"Operator"`
	Values    []any  `json:"Values"`
}

type wireSort struct {
	FieldName string `json:"fieldName"`
	SortType  string `json:"sorttype"`
}

func wireFields(names []string) []wireField {
	fields := make([]wireField, len(names))
	for i, name := range names {
		fields[i].Field.Name = name
	}
	return fields
}

func wireQuery(q Query) map[string]any {
	body := map[string]any{
		"fields": wireFields(q.Fields),
	}
	if len(q.Where) > 0 {
		where := make([]wireFilter, len(q.Where))
		for i, f := range q.Where {
			where[i] = wireFilter{FieldName: f.Field, Operator: f.Operator, Values: f.Values}
		}
		body["where"] = where
	}
	if len(q.OrderBy) > 0 {
		orderBy := make([]wireSort, len(q.OrderBy))
		for i, s := range q.OrderBy {
			sortType := "ASC"
			if s.Desc {
				sortType = "DESC"
			}
			orderBy[i] = wireSort{FieldName: s.Field, SortType: sortType}
		}
		body["orderBy"] = orderBy
	}
	return body
}

// post issues one store call and unwraps the response envelope.
func (c *apperClient) post(ctx context.Context, path string, body any) (*envelope, error) {
	var env envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&env).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("store request failed: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		// resty only unmarshals 2xx bodies, so recover the store's message
		// from the raw response before wrapping the sentinel.
		_ = json.Unmarshal(resp.Body(), &env)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, env.Message)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("store returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if !env.Success {
		return nil, fmt.Errorf("store call unsuccessful: %s", env.Message)
	}
	return &env, nil
}

func (c *apperClient) List(ctx context.Context, entity string, q Query) ([]Fields, error) {
	env, err := c.post(ctx, fmt.Sprintf("/fetchRecords/%s", entity), wireQuery(q))
	if err != nil {
		return nil, err
	}

	var records []Fields
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &records); err != nil {
			return nil, fmt.Errorf("failed to decode records: %w", err)
		}
	}
	return records, nil
}

func (c *apperClient) GetByID(ctx context.Context, entity string, id int, fields []string) (Fields, error) {
	body := map[string]any{"fields": wireFields(fields)}
	env, err := c.post(ctx, fmt.Sprintf("/getRecordById/%s/%d", entity, id), body)
	if err != nil {
		return nil, err
	}

	var record Fields
	if len(env.Data) == 0 {
		return nil, fmt.Errorf("%w: empty response for %s %d", ErrNotFound, entity, id)
	}
	if err := json.Unmarshal(env.Data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return record, nil
}

func (c *apperClient) Create(ctx context.Context, entity string, records []Fields) ([]Result, error) {
	body := map[string]any{"records": records}
	env, err := c.post(ctx, fmt.Sprintf("/createRecord/%s", entity), body)
	if err != nil {
		return nil, err
	}
	return toResults(env.Results), nil
}

func (c *apperClient) Update(ctx context.Context, entity string, records []Fields) ([]Result, error) {
	body := map[string]any{"records": records}
	env, err := c.post(ctx, fmt.Sprintf("/updateRecord/%s", entity), body)
	if err != nil {
		return nil, err
	}
	return toResults(env.Results), nil
}

func (c *apperClient) Delete(ctx context.Context, entity string, ids []int) ([]Result, error) {
	body := map[string]any{"RecordIds": ids}
	env, err := c.post(ctx, fmt.Sprintf("/deleteRecord/%s", entity), body)
	if err != nil {
		return nil, err
	}
	return toResults(env.Results), nil
}

func toResults(results []envelopeResult) []Result {
	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{Success: r.Success, Data: r.Data, Message: r.Message}
	}
	return out
}
