// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrapbook

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/scrapbook/internal/platform/constants"
	"github.com/taibuivan/scrapbook/internal/platform/live"
	"github.com/taibuivan/scrapbook/internal/platform/validate"
	"github.com/taibuivan/scrapbook/pkg/pointer"
)

// EventPublisher receives a notification after every successful mutation.
type EventPublisher interface {
	Publish(event live.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(live.Event) {}

// Service fronts a [Repository] with validation, defaults and change events.
type Service struct {
	repo   Repository
	events EventPublisher
	logger *slog.Logger
}

// NewService creates a Service. A nil events publisher disables notifications.
func NewService(repo Repository, events EventPublisher, logger *slog.Logger) *Service {
	if events == nil {
		events = noopPublisher{}
	}
	return &Service{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// ListItems returns every item in ascending id order; never nil on success.
func (service *Service) ListItems(ctx context.Context) ([]*Item, error) {
	items, err := service.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]*Item, 0)
	}
	return items, nil
}

// CountItems reports how many items the store holds.
func (service *Service) CountItems(ctx context.Context) (int, error) {
	return service.repo.Count(ctx)
}

// CreateItem validates input, fills omitted hints with defaults and stores
// the item. The returned item carries its assigned id.
func (service *Service) CreateItem(ctx context.Context, input NewItem) (*Item, error) {
	input.Caption = normalizeCaption(input.Caption)

	if err := validateNewItem(input); err != nil {
		return nil, err
	}

	item := &Item{
		ImageURL:  strings.TrimSpace(input.ImageURL),
		Caption:   input.Caption,
		Width:     pointer.To(pointer.Fallback(input.Width, constants.DefaultItemWidth)),
		Alignment: pointer.To(Alignment(pointer.Fallback(input.Alignment, string(AlignCenter)))),
		Offset:    pointer.To(Offset(pointer.Fallback(input.Offset, string(OffsetNone)))),
	}

	if err := service.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "scrapbook_item_created",
		slog.Int64("item_id", item.ID),
		slog.String("image_url", item.ImageURL),
	)
	service.events.Publish(live.Event{Type: live.EventCreated, ID: item.ID})

	return item, nil
}

// DeleteItem removes the item with id. Deleting an unknown id succeeds.
func (service *Service) DeleteItem(ctx context.Context, id int64) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "scrapbook_item_deleted", slog.Int64("item_id", id))
	service.events.Publish(live.Event{Type: live.EventDeleted, ID: id})
	return nil
}

// validateNewItem checks the create input field by field, in the order a
// client reads its form.
func validateNewItem(input NewItem) error {
	validator := &validate.Validator{}

	validator.Required(FieldImageURL, input.ImageURL).URL(FieldImageURL, strings.TrimSpace(input.ImageURL))

	if input.Caption != nil {
		validator.MaxLen(FieldCaption, *input.Caption, constants.MaxCaptionLength)
	}
	if input.Width != nil {
		validator.Range(FieldWidth, *input.Width, constants.MinItemWidth, constants.MaxItemWidth)
	}
	if input.Alignment != nil {
		validator.OneOf(FieldAlignment, *input.Alignment, Alignments()...)
	}
	if input.Offset != nil {
		validator.OneOf(FieldOffset, *input.Offset, Offsets()...)
	}

	return validator.Err()
}

// normalizeCaption trims and NFC-normalizes a caption; blank becomes absent.
func normalizeCaption(caption *string) *string {
	if caption == nil {
		return nil
	}
	trimmed := strings.TrimSpace(norm.NFC.String(*caption))
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
