package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/loadline/internal/app"
	"github.com/alexanderramin/loadline/internal/db"
	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/importer"
	"github.com/alexanderramin/loadline/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService returns a service that upserts feed issues in a single
// transaction. Items missing from a feed are left untouched.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFeed(ctx context.Context, path string) (*app.ImportResult, error) {
	data, err := readFeedFile(path)
	if err != nil {
		return nil, err
	}
	return s.ImportFeedData(ctx, data)
}

func (s *importService) ImportFeedData(ctx context.Context, data []byte) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"bytes": len(data)}
	defer func() { observe(ctx, s.observer, "import-feed", startedAt, fields, &err) }()

	feed, err := importer.ParseFeed(data)
	if err != nil {
		return nil, &app.ImportError{Code: app.ImportErrInvalidFeed, Message: err.Error()}
	}
	if errs := importer.ValidateFeed(feed); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, &app.ImportError{
			Code:    app.ImportErrValidationFailed,
			Message: fmt.Sprintf("feed has %d invalid fields", len(errs)),
			Errors:  errs,
		}
	}

	items, err := importer.Convert(feed, startedAt)
	if err != nil {
		return nil, fmt.Errorf("converting feed: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWorkItemRepo(tx)
		for _, item := range items {
			if err := txItems.Upsert(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storing feed: %w", err)
	}

	result = summarizeImport(items)
	fields["items"] = result.ItemCount
	fields["relations"] = result.RelationCount
	return result, nil
}

func summarizeImport(items []*domain.WorkItem) *app.ImportResult {
	r := &app.ImportResult{ItemCount: len(items)}
	for _, item := range items {
		if item.IsClosed() {
			r.ClosedCount++
		}
		r.RelationCount += len(item.OwnedRelations())
	}
	return r
}

func readFeedFile(path string) ([]byte, error) {
	data, err := importer.ReadFeedFile(path)
	if err != nil {
		return nil, &app.ImportError{Code: app.ImportErrInvalidFeed, Message: err.Error()}
	}
	return data, nil
}
