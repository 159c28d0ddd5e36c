package client

import (
	"net/http"
)

// Page is the normalized pagination shape. PageNumber is 1-based.
type Page[T any] struct {
	Items      []T
	PageNumber int
	PageSize   int
	TotalCount int64
	TotalPages int
	First      bool
	Last       bool
}

func (p Page[T]) HasPrev() bool {
	return p.PageNumber > 1
}

func (p Page[T]) HasNext() bool {
	return p.PageNumber < p.TotalPages
}

type pageShape[T any] interface {
	normalize() Page[T]
}

// DecodePage decodes an envelope whose data has shape S and normalizes it.
func DecodePage[T any, S pageShape[T]](resp *http.Response, msgs *Messages) (Page[T], error) {
	shape, err := Decode[S](resp, msgs)
	if err != nil {
		return Page[T]{}, err
	}
	return shape.normalize(), nil
}

func newPage[T any](items []T, number, size int, total int64, pages int) Page[T] {
	if pages == 0 && size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	if number < 1 {
		number = 1
	}
	return Page[T]{
		Items:      items,
		PageNumber: number,
		PageSize:   size,
		TotalCount: total,
		TotalPages: pages,
		First:      number <= 1,
		Last:       number >= pages,
	}
}

// ItemsPage is the catalog page shape.
type ItemsPage[T any] struct {
	PageSize   int   `json:"pageSize"`
	PageNumber int   `json:"pageNumber"`
	TotalCount int64 `json:"totalCount"`
	Items      []T   `json:"items"`
}

func (p ItemsPage[T]) normalize() Page[T] {
	return newPage(p.Items, p.PageNumber, p.PageSize, p.TotalCount, 0)
}

// ListPage is the bookmark page shape, nested one level deeper under data.
type ListPage[T any] struct {
	Data struct {
		PageSize        int   `json:"pageSize"`
		PageNumber      int   `json:"pageNumber"`
		TotalPageNumber int   `json:"totalPageNumber"`
		TotalSize       int64 `json:"totalSize"`
		List            []T   `json:"list"`
	} `json:"data"`
}

func (p ListPage[T]) normalize() Page[T] {
	d := p.Data
	return newPage(d.List, d.PageNumber, d.PageSize, d.TotalSize, d.TotalPageNumber)
}

// SpringPage is the chatbot page shape. Number is 0-based.
type SpringPage[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

func (p SpringPage[T]) normalize() Page[T] {
	page := newPage(p.Content, p.Number+1, p.Size, p.TotalElements, p.TotalPages)
	page.First = p.First
	page.Last = p.Last
	return page
}
