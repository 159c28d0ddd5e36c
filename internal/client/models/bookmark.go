package models

// Bookmark is the backend's bookmark detail record. Nullable strings decode
// to "".
type Bookmark struct {
	BookmarkTsid   string   `json:"bookmarkTsid"`
	UserID         string   `json:"userId"`
	EmergingTechID string   `json:"emergingTechId"`
	Title          string   `json:"title,omitempty"`
	URL            string   `json:"url,omitempty"`
	Provider       string   `json:"provider,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	PublishedAt    string   `json:"publishedAt,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Memo           string   `json:"memo,omitempty"`
	CreatedAt      string   `json:"createdAt"`
	CreatedBy      string   `json:"createdBy,omitempty"`
	UpdatedAt      string   `json:"updatedAt,omitempty"`
	UpdatedBy      string   `json:"updatedBy,omitempty"`
}

type BookmarkCreateRequest struct {
	EmergingTechID string   `json:"emergingTechId"`
	Tags           []string `json:"tags,omitempty"`
	Memo           string   `json:"memo,omitempty"`
}

type BookmarkUpdateRequest struct {
	Tags []string `json:"tags"`
	Memo string   `json:"memo,omitempty"`
}

type OperationType string

const (
	OperationCreate OperationType = "CREATE"
	OperationUpdate OperationType = "UPDATE"
	OperationDelete OperationType = "DELETE"
)

// BookmarkHistoryEntry is an immutable audit record of one bookmark change.
type BookmarkHistoryEntry struct {
	HistoryID     string         `json:"historyId"`
	EntityID      string         `json:"entityId"`
	OperationType OperationType  `json:"operationType"`
	BeforeData    map[string]any `json:"beforeData,omitempty"`
	AfterData     map[string]any `json:"afterData,omitempty"`
	ChangedBy     string         `json:"changedBy"`
	ChangedAt     string         `json:"changedAt"`
	ChangeReason  string         `json:"changeReason,omitempty"`
}

// Bookmark list orderings offered by the UI.
const (
	SortCreatedDesc = "createdAt,desc"
	SortCreatedAsc  = "createdAt,asc"
	SortUpdatedDesc = "updatedAt,desc"
)

var BookmarkSorts = []string{SortCreatedDesc, SortCreatedAsc, SortUpdatedDesc}

// Bookmark search fields.
const (
	SearchFieldAll   = "all"
	SearchFieldTitle = "title"
	SearchFieldMemo  = "memo"
	SearchFieldTags  = "tags"
)

var SearchFields = []string{SearchFieldAll, SearchFieldTitle, SearchFieldMemo, SearchFieldTags}

// TrashDayOptions are the retention windows the trash view filters by.
var TrashDayOptions = []int{7, 14, 30, 60, 90}

type BookmarkListParams struct {
	Page     int
	Size     int
	Sort     string
	Provider string
}

func (p BookmarkListParams) Query() *Query {
	return NewQuery().Int("page", p.Page).Int("size", p.Size).Str("sort", p.Sort).Str("provider", p.Provider)
}

type BookmarkSearchParams struct {
	Q           string
	Page        int
	Size        int
	SearchField string
}

func (p BookmarkSearchParams) Query() *Query {
	return NewQuery().Str("q", p.Q).Int("page", p.Page).Int("size", p.Size).Str("searchField", p.SearchField)
}

type BookmarkDeletedParams struct {
	Page int
	Size int
	Days int
}

func (p BookmarkDeletedParams) Query() *Query {
	return NewQuery().Int("page", p.Page).Int("size", p.Size).Int("days", p.Days)
}

type BookmarkHistoryParams struct {
	Page          int
	Size          int
	OperationType OperationType
	StartDate     string
	EndDate       string
}

func (p BookmarkHistoryParams) Query() *Query {
	return NewQuery().
		Int("page", p.Page).
		Int("size", p.Size).
		Str("operationType", string(p.OperationType)).
		Str("startDate", p.StartDate).
		Str("endDate", p.EndDate)
}
