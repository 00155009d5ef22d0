package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrBookNotFound is returned when no book matches a given id.
var ErrBookNotFound = errors.New("book not found")

// Book represents a book entity.
type Book struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Year       BookYear  `json:"year"`
	Author     string    `json:"author"`
	Summary    string    `json:"summary"`
	Publisher  string    `json:"publisher"`
	PageCount  int       `json:"pageCount"`
	ReadPage   int       `json:"readPage"`
	Finished   bool      `json:"finished"`
	Reading    bool      `json:"reading"`
	InsertedAt time.Time `json:"insertedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BookFields holds the client provided fields of a book. It is
// the payload of both creation and update requests.
type BookFields struct {
	Name      string `json:"name"`
	Year      BookYear `json:"year"`
	Author    string `json:"author"`
	Summary   string `json:"summary"`
	Publisher string `json:"publisher"`
	PageCount int    `json:"pageCount"`
	ReadPage  int    `json:"readPage"`
	Reading   bool   `json:"reading"`
}

// BookYear is the publication year of a book. Clients send it either
// as a string or as a number, both are stored as text.
type BookYear string

// UnmarshalJSON accepts a json string, a json number or null.
// A number keeps its literal text.
func (y *BookYear) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*y = ""
		return nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := jsonAPI.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*y = BookYear(s)
		return nil
	}

	var n float64
	if err := jsonAPI.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("year must be a string or a number: %w", err)
	}
	*y = BookYear(trimmed)
	return nil
}

// BookSummary is the listing projection of a book.
type BookSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// BookFilter holds the optional listing predicates. A nil
// pointer or an empty name means the predicate is not set.
type BookFilter struct {
	Name     string
	Reading  *bool
	Finished *bool
}

// BookStorage defines possible operations on book entity.
type BookStorage interface {
	Add(ctx context.Context, fields BookFields) (string, error)
	ListFiltered(ctx context.Context, filter BookFilter) []BookSummary
	GetByID(ctx context.Context, id string) (Book, error)
	UpdateByID(ctx context.Context, id string, fields BookFields) (Book, error)
	DeleteByID(ctx context.Context, id string) (Book, error)
	Count(ctx context.Context) int
}

// ValidationError reports a book payload rejected by the validation rules.
type ValidationError struct {
	Field  string
	Reason string
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", v.Field, v.Reason)
}

// bookFieldsOrder fixes which violation is reported first
// since ozzo returns the failed rules as a map.
var bookFieldsOrder = []string{"name", "pageCount", "readPage"}

// Validate checks the book fields and returns a *ValidationError
// describing the first violated rule.
func (f BookFields) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("Please provide the book name")),
		validation.Field(&f.PageCount, validation.Min(0).Error("pageCount must not be negative")),
		validation.Field(&f.ReadPage,
			validation.Min(0).Error("readPage must not be negative"),
			validation.Max(f.PageCount).Error("readPage must not be greater than pageCount"),
		),
	)
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	for _, field := range bookFieldsOrder {
		if ferr, ok := errs[field]; ok {
			return &ValidationError{Field: field, Reason: ferr.Error()}
		}
	}
	return err
}

// Apply overwrites the mutable fields of the book and derives its finished state.
func (f BookFields) Apply(book *Book) {
	book.Name = f.Name
	book.Year = f.Year
	book.Author = f.Author
	book.Summary = f.Summary
	book.Publisher = f.Publisher
	book.PageCount = f.PageCount
	book.ReadPage = f.ReadPage
	book.Reading = f.Reading
	book.Finished = f.PageCount == f.ReadPage
}

// ToSummary returns the listing projection of the book.
func (b Book) ToSummary() BookSummary {
	return BookSummary{ID: b.ID, Name: b.Name, Publisher: b.Publisher}
}
