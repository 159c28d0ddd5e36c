package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_SkipsZeroValues(t *testing.T) {
	q := EmergingTechListParams{Page: 2, Size: 20, Provider: ProviderOpenAI, Sort: CatalogSort}.Query()
	assert.Equal(t, "page=2&provider=OPENAI&size=20&sort=publishedAt%2Cdesc", q.Values().Encode())

	assert.Empty(t, PageParams{}.Query().Values().Encode())
}

func TestBookmarkQueries(t *testing.T) {
	assert.Equal(t, "page=1&q=llm&searchField=tags&size=10",
		BookmarkSearchParams{Q: "llm", Page: 1, Size: 10, SearchField: SearchFieldTags}.Query().Values().Encode())
	assert.Equal(t, "days=30&page=1&size=10",
		BookmarkDeletedParams{Page: 1, Size: 10, Days: 30}.Query().Values().Encode())
	assert.Equal(t, "endDate=2024-02-01&operationType=UPDATE&page=3",
		BookmarkHistoryParams{Page: 3, OperationType: OperationUpdate, EndDate: "2024-02-01"}.Query().Values().Encode())
}
