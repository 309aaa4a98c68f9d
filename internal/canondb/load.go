package canondb

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"aafcanon/internal/canon"
)

// LoadResult summarizes one completed load.
type LoadResult struct {
	DocumentID int64
	Events     int
}

// Load inserts one canonical document. The insert is transactional; a
// failing row rolls the whole document back.
func (s *Store) Load(ctx context.Context, doc *canon.Document) (LoadResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LoadResult{}, fmt.Errorf("begin load tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO documents (
            project_name, edit_rate_fps, tc_format,
            timeline_name, start_tc_frames, loaded_at
        ) VALUES (?, ?, ?, ?, ?, ?)`,
		doc.Project.Name,
		doc.Project.EditRateFPS,
		doc.Project.TCFormat,
		doc.Timeline.Name,
		doc.Timeline.StartTCFrames,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return LoadResult{}, fmt.Errorf("insert document: %w", err)
	}
	docID, err := res.LastInsertId()
	if err != nil {
		return LoadResult{}, fmt.Errorf("document id: %w", err)
	}

	for _, ev := range doc.Timeline.Events {
		if err := insertEvent(ctx, tx, docID, ev); err != nil {
			return LoadResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return LoadResult{}, fmt.Errorf("commit load: %w", err)
	}
	return LoadResult{DocumentID: docID, Events: len(doc.Timeline.Events)}, nil
}

func insertEvent(ctx context.Context, tx *sql.Tx, docID int64, ev canon.Event) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO events (
            document_id, event_id, timeline_start_frames,
            length_frames, effect_name, effect_on_filler
        ) VALUES (?, ?, ?, ?, ?, ?)`,
		docID, ev.ID, ev.TimelineStartFrames, ev.LengthFrames,
		ev.Effect.Name, boolInt(ev.Effect.OnFiller),
	)
	if err != nil {
		return fmt.Errorf("insert event %s: %w", ev.ID, err)
	}
	eventPK, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("event id for %s: %w", ev.ID, err)
	}

	if ev.Source != nil {
		if err := insertSource(ctx, tx, eventPK, ev.ID, ev.Source); err != nil {
			return err
		}
	}
	return insertEffect(ctx, tx, eventPK, ev.ID, ev.Effect)
}

func insertSource(ctx context.Context, tx *sql.Tx, eventPK int64, eventID string, src *canon.Source) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO sources (
            event_pk, path, tape_id, disk_label,
            src_tc_start_frames, src_rate_fps, src_drop
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		eventPK,
		nullableString(src.Path),
		nullableString(src.TapeID),
		nullableString(src.DiskLabel),
		nullableInt(src.SrcTCStartFrames),
		src.SrcRateFPS,
		boolInt(src.SrcDrop),
	)
	if err != nil {
		return fmt.Errorf("insert source for %s: %w", eventID, err)
	}

	for i, umid := range src.UMIDChain {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO umid_chain (event_pk, position, umid) VALUES (?, ?, ?)",
			eventPK, i, umid,
		); err != nil {
			return fmt.Errorf("insert umid chain for %s: %w", eventID, err)
		}
	}
	return nil
}

func insertEffect(ctx context.Context, tx *sql.Tx, eventPK int64, eventID string, fx canon.Effect) error {
	for _, name := range sortedParamNames(fx.Parameters) {
		kind, value := scalarColumns(fx.Parameters[name])
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO effect_parameters (event_pk, name, value_kind, value) VALUES (?, ?, ?, ?)",
			eventPK, name, kind, value,
		); err != nil {
			return fmt.Errorf("insert parameter %q for %s: %w", name, eventID, err)
		}
	}

	kfNames := make([]string, 0, len(fx.Keyframes))
	for name := range fx.Keyframes {
		kfNames = append(kfNames, name)
	}
	sort.Strings(kfNames)
	for _, name := range kfNames {
		for i, kf := range fx.Keyframes[name] {
			_, value := scalarColumns(kf.V)
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO effect_keyframes (event_pk, parameter, position, t, v) VALUES (?, ?, ?, ?, ?)",
				eventPK, name, i, kf.T, value,
			); err != nil {
				return fmt.Errorf("insert keyframe %q[%d] for %s: %w", name, i, eventID, err)
			}
		}
	}

	for _, ref := range fx.ExternalRefs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO external_refs (event_pk, kind, path) VALUES (?, ?, ?)",
			eventPK, ref.Kind, ref.Path,
		); err != nil {
			return fmt.Errorf("insert external ref for %s: %w", eventID, err)
		}
	}
	return nil
}

func sortedParamNames(params map[string]any) []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// scalarColumns maps a parameter value to its (kind, text) columns.
func scalarColumns(v any) (string, any) {
	switch value := v.(type) {
	case nil:
		return "null", nil
	case string:
		return "string", value
	case float64:
		return "number", fmt.Sprintf("%g", value)
	default:
		return "string", fmt.Sprintf("%v", value)
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableInt(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}
