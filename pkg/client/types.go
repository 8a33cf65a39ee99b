package client

import "encoding/json"

// FetchMode controls how a page is fetched before extraction.
type FetchMode string

const (
	// FetchModeAuto lets the server pick static or dynamic fetching.
	FetchModeAuto FetchMode = "auto"

	// FetchModeStatic fetches raw HTML without JavaScript rendering.
	FetchModeStatic FetchMode = "static"

	// FetchModeDynamic renders the page in a headless browser.
	FetchModeDynamic FetchMode = "dynamic"
)

// LLMConfig overrides the LLM provider used for an extraction.
type LLMConfig struct {
	Provider string `json:"provider,omitempty"`
	APIKey   string `json:"apiKey,omitempty"`
	BaseURL  string `json:"baseUrl,omitempty"`
	Model    string `json:"model,omitempty"`
}

// ExtractRequest asks for structured data from a single web page.
type ExtractRequest struct {
	URL       string          `json:"url"`
	Schema    json.RawMessage `json:"schema"`
	FetchMode FetchMode       `json:"fetchMode,omitempty"`
	LLMConfig *LLMConfig      `json:"llmConfig,omitempty"`
}

// ExtractResponse carries the extracted data and its metadata.
type ExtractResponse struct {
	Data      json.RawMessage     `json:"data"`
	URL       string              `json:"url"`
	FetchedAt string              `json:"fetchedAt"`
	Usage     *TokenUsage         `json:"usage,omitempty"`
	Metadata  *ExtractionMetadata `json:"metadata,omitempty"`
}

// TokenUsage reports LLM token consumption and cost for one extraction.
type TokenUsage struct {
	InputTokens  uint64  `json:"inputTokens"`
	OutputTokens uint64  `json:"outputTokens"`
	CostUSD      float64 `json:"costUsd"`
	LLMCostUSD   float64 `json:"llmCostUsd"`
	IsBYOK       bool    `json:"isByok"`
}

// ExtractionMetadata describes how an extraction was performed.
type ExtractionMetadata struct {
	FetchDurationMS   uint64 `json:"fetchDurationMs"`
	ExtractDurationMS uint64 `json:"extractDurationMs"`
	Model             string `json:"model"`
	Provider          string `json:"provider"`
}

// CrawlOptions tunes a crawl job.
type CrawlOptions struct {
	FollowSelector   string `json:"followSelector,omitempty"`
	FollowPattern    string `json:"followPattern,omitempty"`
	MaxDepth         int    `json:"maxDepth,omitempty"`
	NextSelector     string `json:"nextSelector,omitempty"`
	MaxPages         int    `json:"maxPages,omitempty"`
	MaxURLs          int    `json:"maxUrls,omitempty"`
	Delay            string `json:"delay,omitempty"`
	Concurrency      int    `json:"concurrency,omitempty"`
	SameDomainOnly   bool   `json:"sameDomainOnly,omitempty"`
	ExtractFromSeeds bool   `json:"extractFromSeeds,omitempty"`
}

// CrawlRequest starts an asynchronous crawl job.
type CrawlRequest struct {
	URL        string          `json:"url"`
	Schema     json.RawMessage `json:"schema"`
	Options    *CrawlOptions   `json:"options,omitempty"`
	WebhookURL string          `json:"webhookUrl,omitempty"`
	LLMConfig  *LLMConfig      `json:"llmConfig,omitempty"`
}

// JobStatus is the lifecycle state of a crawl job.
type JobStatus string

const (
	// JobStatusPending means the job is queued but not started.
	JobStatusPending JobStatus = "pending"

	// JobStatusRunning means the job is in progress.
	JobStatusRunning JobStatus = "running"

	// JobStatusCompleted means the job finished successfully.
	JobStatusCompleted JobStatus = "completed"

	// JobStatusFailed means the job stopped with an error.
	JobStatusFailed JobStatus = "failed"
)

// CrawlJobCreated acknowledges a newly created crawl job.
type CrawlJobCreated struct {
	JobID     string    `json:"jobId"`
	Status    JobStatus `json:"status"`
	StatusURL string    `json:"statusUrl"`
}

// Job describes a crawl job and its progress counters.
type Job struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Status           JobStatus `json:"status"`
	URL              string    `json:"url"`
	URLsQueued       int       `json:"urls_queued"`
	PageCount        int       `json:"page_count"`
	TokenUsageInput  uint64    `json:"token_usage_input"`
	TokenUsageOutput uint64    `json:"token_usage_output"`
	CostUSD          float64   `json:"cost_usd"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	StartedAt        string    `json:"started_at,omitempty"`
	CompletedAt      string    `json:"completed_at,omitempty"`
	CreatedAt        string    `json:"created_at"`
}

// JobList is one page of jobs.
type JobList struct {
	Jobs []Job `json:"jobs"`
}

// JobResults carries the extraction output of a finished job.
type JobResults struct {
	JobID     string            `json:"jobId"`
	Status    JobStatus         `json:"status"`
	PageCount int               `json:"pageCount"`
	Results   []json.RawMessage `json:"results,omitempty"`
	Merged    json.RawMessage   `json:"merged,omitempty"`
}

// AnalyzeRequest asks the server to inspect a site's structure.
type AnalyzeRequest struct {
	URL   string `json:"url"`
	Depth int    `json:"depth,omitempty"`
}

// AnalyzeResponse suggests a schema and crawl patterns for a site.
type AnalyzeResponse struct {
	URL             string          `json:"url"`
	SuggestedSchema json.RawMessage `json:"suggestedSchema"`
	FollowPatterns  []string        `json:"followPatterns"`
}

// Schema is a stored extraction schema.
type Schema struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SchemaYAML  string `json:"schemaYaml"`
	Category    string `json:"category,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// SchemaList holds all schemas of the account.
type SchemaList struct {
	Schemas []Schema `json:"schemas"`
}

// CreateSchemaRequest creates or updates a schema.
type CreateSchemaRequest struct {
	Name        string `json:"name"`
	SchemaYAML  string `json:"schemaYaml"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// Site is a saved site configuration.
type Site struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	URL          string        `json:"url"`
	SchemaID     string        `json:"schemaId,omitempty"`
	CrawlOptions *CrawlOptions `json:"crawlOptions,omitempty"`
	CreatedAt    string        `json:"createdAt"`
}

// SiteList holds all saved sites of the account.
type SiteList struct {
	Sites []Site `json:"sites"`
}

// CreateSiteRequest creates or updates a saved site.
type CreateSiteRequest struct {
	Name         string        `json:"name"`
	URL          string        `json:"url"`
	SchemaID     string        `json:"schemaId,omitempty"`
	CrawlOptions *CrawlOptions `json:"crawlOptions,omitempty"`
}

// APIKey describes an API key without its secret.
type APIKey struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Prefix     string `json:"prefix"`
	CreatedAt  string `json:"createdAt"`
	LastUsedAt string `json:"lastUsedAt,omitempty"`
}

// APIKeyList holds the account's API keys.
type APIKeyList struct {
	Keys []APIKey `json:"keys"`
}

// APIKeyCreated carries a newly minted API key. The full key is only ever
// returned once.
type APIKeyCreated struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// Usage summarizes billing-period consumption.
type Usage struct {
	TotalJobs       uint64  `json:"total_jobs"`
	TotalChargedUSD float64 `json:"total_charged_usd"`
	BYOKJobs        uint64  `json:"byok_jobs"`
}
