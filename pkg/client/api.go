package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Extract extracts structured data from a single web page.
func (c *Client) Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	var out ExtractResponse
	if err := c.post(ctx, "/api/v1/extract", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Crawl starts an asynchronous crawl job.
func (c *Client) Crawl(ctx context.Context, req CrawlRequest) (*CrawlJobCreated, error) {
	var out CrawlJobCreated
	if err := c.post(ctx, "/api/v1/crawl", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Analyze inspects a website to detect structure and suggest schemas.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	var out AnalyzeResponse
	if err := c.post(ctx, "/api/v1/analyze", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUsage returns usage statistics for the current billing period.
func (c *Client) GetUsage(ctx context.Context) (*Usage, error) {
	var out Usage
	if err := c.get(ctx, "/api/v1/usage", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListJobs returns one page of jobs. Zero limit or offset omits the
// parameter.
func (c *Client) ListJobs(ctx context.Context, limit, offset int) (*JobList, error) {
	path := "/api/v1/jobs"
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var out JobList
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJob returns a job by ID. Job state changes as the crawl progresses, so
// this read always bypasses the cache.
func (c *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	var out Job
	if err := c.getSkipCache(ctx, "/api/v1/jobs/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJobResults returns the results of a job, optionally merged into a
// single object. Always bypasses the cache.
func (c *Client) GetJobResults(ctx context.Context, id string, merge bool) (*JobResults, error) {
	path := fmt.Sprintf("/api/v1/jobs/%s/results", id)
	if merge {
		path += "?merge=true"
	}

	var out JobResults
	if err := c.getSkipCache(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSchemas returns all schemas.
func (c *Client) ListSchemas(ctx context.Context) (*SchemaList, error) {
	var out SchemaList
	if err := c.get(ctx, "/api/v1/schemas", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSchema returns a schema by ID.
func (c *Client) GetSchema(ctx context.Context, id string) (*Schema, error) {
	var out Schema
	if err := c.get(ctx, "/api/v1/schemas/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSchema creates a new schema.
func (c *Client) CreateSchema(ctx context.Context, req CreateSchemaRequest) (*Schema, error) {
	var out Schema
	if err := c.post(ctx, "/api/v1/schemas", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSchema replaces a schema by ID.
func (c *Client) UpdateSchema(ctx context.Context, id string, req CreateSchemaRequest) (*Schema, error) {
	var out Schema
	if err := c.put(ctx, "/api/v1/schemas/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSchema deletes a schema by ID.
func (c *Client) DeleteSchema(ctx context.Context, id string) error {
	return c.del(ctx, "/api/v1/schemas/"+id)
}

// ListSites returns all saved sites.
func (c *Client) ListSites(ctx context.Context) (*SiteList, error) {
	var out SiteList
	if err := c.get(ctx, "/api/v1/sites", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSite returns a saved site by ID.
func (c *Client) GetSite(ctx context.Context, id string) (*Site, error) {
	var out Site
	if err := c.get(ctx, "/api/v1/sites/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSite saves a new site configuration.
func (c *Client) CreateSite(ctx context.Context, req CreateSiteRequest) (*Site, error) {
	var out Site
	if err := c.post(ctx, "/api/v1/sites", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSite replaces a saved site by ID.
func (c *Client) UpdateSite(ctx context.Context, id string, req CreateSiteRequest) (*Site, error) {
	var out Site
	if err := c.put(ctx, "/api/v1/sites/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSite removes a saved site by ID.
func (c *Client) DeleteSite(ctx context.Context, id string) error {
	return c.del(ctx, "/api/v1/sites/"+id)
}

// ListKeys returns the account's API keys.
func (c *Client) ListKeys(ctx context.Context) (*APIKeyList, error) {
	var out APIKeyList
	if err := c.get(ctx, "/api/v1/keys", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateKey creates a new API key with the given name.
func (c *Client) CreateKey(ctx context.Context, name string) (*APIKeyCreated, error) {
	var out APIKeyCreated
	if err := c.post(ctx, "/api/v1/keys", map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeKey revokes an API key by ID.
func (c *Client) RevokeKey(ctx context.Context, id string) error {
	return c.del(ctx, "/api/v1/keys/"+id)
}
