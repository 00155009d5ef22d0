package main

import (
	"context"

	"go.uber.org/zap"
)

type BookServiceProvider interface {
	Add(ctx context.Context, fields BookFields) (string, error)
	ListFiltered(ctx context.Context, filter BookFilter) []BookSummary
	GetByID(ctx context.Context, id string) (Book, error)
	UpdateByID(ctx context.Context, id string, fields BookFields) (Book, error)
	DeleteByID(ctx context.Context, id string) (Book, error)
	Count(ctx context.Context) int
}

type BookService struct {
	logger    *zap.Logger
	clock     Clocker
	storage   BookStorage
	publisher EventPublisher
}

func NewBookService(logger *zap.Logger, clock Clocker, storage BookStorage, publisher EventPublisher) BookServiceProvider {
	return &BookService{
		logger:    logger,
		clock:     clock,
		storage:   storage,
		publisher: publisher,
	}
}

func (bs *BookService) Add(ctx context.Context, fields BookFields) (string, error) {
	id, err := bs.storage.Add(ctx, fields)
	if err != nil {
		return id, err
	}
	if book, gerr := bs.storage.GetByID(ctx, id); gerr == nil {
		bs.publish(ctx, BookCreated, book)
	}
	return id, nil
}

func (bs *BookService) ListFiltered(ctx context.Context, filter BookFilter) []BookSummary {
	return bs.storage.ListFiltered(ctx, filter)
}

func (bs *BookService) GetByID(ctx context.Context, id string) (Book, error) {
	return bs.storage.GetByID(ctx, id)
}

func (bs *BookService) UpdateByID(ctx context.Context, id string, fields BookFields) (Book, error) {
	book, err := bs.storage.UpdateByID(ctx, id, fields)
	if err != nil {
		return book, err
	}
	bs.publish(ctx, BookUpdated, book)
	return book, nil
}

func (bs *BookService) DeleteByID(ctx context.Context, id string) (Book, error) {
	book, err := bs.storage.DeleteByID(ctx, id)
	if err != nil {
		return book, err
	}
	bs.publish(ctx, BookDeleted, book)
	return book, nil
}

func (bs *BookService) Count(ctx context.Context) int {
	return bs.storage.Count(ctx)
}

// publish never fails the caller. The event is lost if the publisher errors.
func (bs *BookService) publish(ctx context.Context, kind string, book Book) {
	event := BookEvent{Type: kind, BookID: book.ID, Book: book, At: bs.clock.Now()}
	if err := bs.publisher.Publish(ctx, event); err != nil {
		bs.logger.Error("service: failed to publish book event",
			zap.String("event.type", kind),
			zap.String("book.id", book.ID),
			zap.String("request.id", GetValueFromContext(ctx, RequestIDContextKey)),
			zap.Error(err),
		)
	}
}
