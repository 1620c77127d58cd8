package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/phrasekit/internal/score"
)

// Revision is one saved state of a project.
type Revision struct {
	Project  string         `json:"project"`
	Seq      int64          `json:"seq"`
	Hash     string         `json:"hash"`
	Document score.Document `json:"-"`
}

// Edit records one command that changed a project. Seq is the revision
// the command produced.
type Edit struct {
	ID         string            `json:"id"`
	Project    string            `json:"project"`
	Seq        int64             `json:"seq"`
	Action     string            `json:"action"`
	Args       map[string]string `json:"args"`
	BeforeHash string            `json:"before_hash"`
	AfterHash  string            `json:"after_hash"`
}

// SaveRevision appends doc to the history of project, creating the project
// on first use. When doc hashes the same as the latest revision nothing is
// written and the latest revision is returned with created false.
func (s *Store) SaveRevision(ctx context.Context, project string, doc score.Document) (rev Revision, created bool, err error) {
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		rev, created, err = saveRevision(ctx, tx, project, doc)
		return err
	})
	if err != nil {
		return Revision{}, false, fmt.Errorf("save revision: %w", err)
	}
	return rev, created, nil
}

// Commit saves doc as a new revision of project and records the edit that
// produced it. An edit that leaves the document unchanged is still
// recorded, pointing at the latest revision.
func (s *Store) Commit(ctx context.Context, project, action string, args map[string]string, doc score.Document) (Edit, error) {
	var e Edit
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		before, err := latestHash(ctx, tx, project)
		if err != nil {
			return err
		}
		rev, _, err := saveRevision(ctx, tx, project, doc)
		if err != nil {
			return err
		}
		e = Edit{
			ID:         s.ids.Generate(),
			Project:    project,
			Seq:        rev.Seq,
			Action:     action,
			Args:       args,
			BeforeHash: before,
			AfterHash:  rev.Hash,
		}
		return insertEdit(ctx, tx, e)
	})
	if err != nil {
		return Edit{}, fmt.Errorf("commit %s: %w", action, err)
	}
	slog.Debug("edit committed", "project", project, "action", action, "seq", e.Seq)
	return e, nil
}

// RecordEdit inserts an edit record. The revision e.Seq must exist.
// Duplicate ids are silently ignored.
func (s *Store) RecordEdit(ctx context.Context, e Edit) error {
	if e.ID == "" {
		e.ID = s.ids.Generate()
	}
	if err := insertEdit(ctx, s.db, e); err != nil {
		return fmt.Errorf("record edit: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Warn("rollback failed", "error", rbErr)
		}
		return err
	}
	return tx.Commit()
}

func saveRevision(ctx context.Context, tx *sql.Tx, project string, doc score.Document) (Revision, bool, error) {
	data, err := score.MarshalCanonical(doc)
	if err != nil {
		return Revision{}, false, err
	}
	hash, err := score.Hash(doc)
	if err != nil {
		return Revision{}, false, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO projects (name) VALUES (?)
		ON CONFLICT(name) DO NOTHING
	`, project); err != nil {
		return Revision{}, false, fmt.Errorf("insert project: %w", err)
	}

	var seq int64
	var latest string
	err = tx.QueryRowContext(ctx, `
		SELECT seq, hash FROM revisions
		WHERE project = ?
		ORDER BY seq DESC
		LIMIT 1
	`, project).Scan(&seq, &latest)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return Revision{}, false, fmt.Errorf("query latest revision: %w", err)
	case latest == hash:
		return Revision{Project: project, Seq: seq, Hash: hash, Document: doc}, false, nil
	}

	seq++
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO revisions (project, seq, hash, document)
		VALUES (?, ?, ?, ?)
	`, project, seq, hash, string(data)); err != nil {
		return Revision{}, false, fmt.Errorf("insert revision: %w", err)
	}
	return Revision{Project: project, Seq: seq, Hash: hash, Document: doc}, true, nil
}

func latestHash(ctx context.Context, q queryer, project string) (string, error) {
	var hash string
	err := q.QueryRowContext(ctx, `
		SELECT hash FROM revisions
		WHERE project = ?
		ORDER BY seq DESC
		LIMIT 1
	`, project).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query latest hash: %w", err)
	}
	return hash, nil
}

func insertEdit(ctx context.Context, ex execer, e Edit) error {
	args := e.Args
	if args == nil {
		args = map[string]string{}
	}
	argsJSON, err := score.CanonicalJSON(args)
	if err != nil {
		return fmt.Errorf("marshal args: %w", err)
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO edits (id, project, seq, action, args, before_hash, after_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, e.ID, e.Project, e.Seq, e.Action, string(argsJSON), e.BeforeHash, e.AfterHash)
	if err != nil {
		return fmt.Errorf("insert edit: %w", err)
	}
	return nil
}

func unmarshalDocument(data string) (score.Document, error) {
	var doc score.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return score.Document{}, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}
