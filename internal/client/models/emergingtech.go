package models

type Provider string

const (
	ProviderOpenAI    Provider = "OPENAI"
	ProviderAnthropic Provider = "ANTHROPIC"
	ProviderGoogle    Provider = "GOOGLE"
	ProviderMeta      Provider = "META"
	ProviderXAI       Provider = "XAI"
)

var Providers = []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGoogle, ProviderMeta, ProviderXAI}

var ProviderLabels = map[Provider]string{
	ProviderOpenAI:    "OpenAI",
	ProviderAnthropic: "Anthropic",
	ProviderGoogle:    "Google",
	ProviderMeta:      "Meta",
	ProviderXAI:       "xAI",
}

type UpdateType string

const (
	UpdateModelRelease   UpdateType = "MODEL_RELEASE"
	UpdateAPIUpdate      UpdateType = "API_UPDATE"
	UpdateSDKRelease     UpdateType = "SDK_RELEASE"
	UpdateProductLaunch  UpdateType = "PRODUCT_LAUNCH"
	UpdatePlatformUpdate UpdateType = "PLATFORM_UPDATE"
	UpdateBlogPost       UpdateType = "BLOG_POST"
)

var UpdateTypes = []UpdateType{
	UpdateModelRelease, UpdateAPIUpdate, UpdateSDKRelease,
	UpdateProductLaunch, UpdatePlatformUpdate, UpdateBlogPost,
}

var UpdateTypeLabels = map[UpdateType]string{
	UpdateModelRelease:   "Model Release",
	UpdateAPIUpdate:      "API Update",
	UpdateSDKRelease:     "SDK Release",
	UpdateProductLaunch:  "Product Launch",
	UpdatePlatformUpdate: "Platform Update",
	UpdateBlogPost:       "Blog Post",
}

type SourceType string

const (
	SourceGitHubRelease SourceType = "GITHUB_RELEASE"
	SourceRSS           SourceType = "RSS"
	SourceWebScraping   SourceType = "WEB_SCRAPING"
)

var SourceTypes = []SourceType{SourceGitHubRelease, SourceRSS, SourceWebScraping}

var SourceTypeLabels = map[SourceType]string{
	SourceGitHubRelease: "GitHub",
	SourceRSS:           "RSS",
	SourceWebScraping:   "Web",
}

type PostStatus string

const (
	StatusDraft     PostStatus = "DRAFT"
	StatusPending   PostStatus = "PENDING"
	StatusPublished PostStatus = "PUBLISHED"
	StatusRejected  PostStatus = "REJECTED"
)

type EmergingTechMetadata struct {
	Version        string         `json:"version,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
	Author         string         `json:"author,omitempty"`
	GithubRepo     string         `json:"githubRepo,omitempty"`
	AdditionalInfo map[string]any `json:"additionalInfo,omitempty"`
}

// EmergingTechItem is a read-only catalog entry. Timestamps are kept as the
// backend formats them.
type EmergingTechItem struct {
	ID          string                `json:"id"`
	Provider    Provider              `json:"provider"`
	UpdateType  UpdateType            `json:"updateType"`
	Title       string                `json:"title"`
	Summary     string                `json:"summary,omitempty"`
	URL         string                `json:"url"`
	PublishedAt string                `json:"publishedAt,omitempty"`
	SourceType  SourceType            `json:"sourceType"`
	Status      PostStatus            `json:"status"`
	ExternalID  string                `json:"externalId,omitempty"`
	Metadata    *EmergingTechMetadata `json:"metadata,omitempty"`
	CreatedAt   string                `json:"createdAt"`
	UpdatedAt   string                `json:"updatedAt"`
}

// CatalogSort is the fixed ordering of the browse listing.
const CatalogSort = "publishedAt,desc"

type EmergingTechListParams struct {
	Page       int
	Size       int
	Provider   Provider
	UpdateType UpdateType
	SourceType SourceType
	StartDate  string
	EndDate    string
	Sort       string
}

func (p EmergingTechListParams) Query() *Query {
	return NewQuery().
		Int("page", p.Page).
		Int("size", p.Size).
		Str("provider", string(p.Provider)).
		Str("updateType", string(p.UpdateType)).
		Str("sourceType", string(p.SourceType)).
		Str("startDate", p.StartDate).
		Str("endDate", p.EndDate).
		Str("sort", p.Sort)
}

type EmergingTechSearchParams struct {
	Q    string
	Page int
	Size int
}

func (p EmergingTechSearchParams) Query() *Query {
	return NewQuery().Str("q", p.Q).Int("page", p.Page).Int("size", p.Size)
}
