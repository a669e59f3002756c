// Package mirror keeps a secondary archive store in step with the
// primary ledger: events for the live path, a periodic reconcile pass
// for anything missed while the worker was down.
package mirror

import (
	"context"
	"fmt"
	"log/slog"

	"outlay/internal/core"
	"outlay/internal/events"
	"outlay/internal/ledger"
)

type Mirror struct {
	archive ledger.Store
	source  ledger.Loader
}

func New(archive ledger.Store, source ledger.Loader) *Mirror {
	return &Mirror{archive: archive, source: source}
}

// HandleRecordAppended archives the record carried by a single event.
func (m *Mirror) HandleRecordAppended(ctx context.Context, msg *events.RecordAppendedMessage) error {
	r, err := msg.Record()
	if err != nil {
		return fmt.Errorf("decode event record: %w", err)
	}

	ref, err := m.archive.Append(ctx, r)
	if err != nil {
		return fmt.Errorf("archive record: %w", err)
	}

	slog.InfoContext(ctx, "Record mirrored to archive",
		"source_ref", msg.Ref,
		"archive_ref", ref)
	return nil
}

// Reconcile appends to the archive every source record it is missing.
// Both stores are append-only with matching order, so the archive's
// length is the cursor into the source.
func (m *Mirror) Reconcile(ctx context.Context) (int, error) {
	src, err := m.source.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load source ledger: %w", err)
	}
	archived, err := m.archive.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load archive: %w", err)
	}

	if len(archived) >= len(src) {
		return 0, nil
	}

	missing := src[len(archived):]
	for i, r := range missing {
		if _, err := m.archive.Append(ctx, r); err != nil {
			return i, fmt.Errorf("archive record %d of %d: %w", i+1, len(missing), err)
		}
	}

	slog.InfoContext(ctx, "Reconcile pass completed",
		"source_records", len(src),
		"archived", len(missing))
	return len(missing), nil
}

// Publisher is the best-effort event hook the append path uses.
type Publisher interface {
	PublishRecordAppended(ctx context.Context, msg *events.RecordAppendedMessage) error
}

// PublishAppend publishes a record-appended event, logging instead of
// failing when no broker is configured or the publish errors. The
// ledger write has already succeeded by the time this runs.
func PublishAppend(ctx context.Context, pub Publisher, r core.Record, ref string) {
	if pub == nil {
		return
	}
	if err := pub.PublishRecordAppended(ctx, events.NewRecordAppendedMessage(r, ref)); err != nil {
		slog.WarnContext(ctx, "Failed to publish record event", "ref", ref, "error", err)
	}
}
