package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// LatestRevision returns the newest revision of project.
func (s *Store) LatestRevision(ctx context.Context, project string) (Revision, error) {
	return s.readRevision(ctx, `
		SELECT project, seq, hash, document FROM revisions
		WHERE project = ?
		ORDER BY seq DESC
		LIMIT 1
	`, project)
}

// Revision returns revision seq of project.
func (s *Store) Revision(ctx context.Context, project string, seq int64) (Revision, error) {
	return s.readRevision(ctx, `
		SELECT project, seq, hash, document FROM revisions
		WHERE project = ? AND seq = ?
	`, project, seq)
}

// RevisionByHash returns the earliest revision of project with hash.
func (s *Store) RevisionByHash(ctx context.Context, project, hash string) (Revision, error) {
	return s.readRevision(ctx, `
		SELECT project, seq, hash, document FROM revisions
		WHERE project = ? AND hash = ?
		ORDER BY seq ASC
		LIMIT 1
	`, project, hash)
}

func (s *Store) readRevision(ctx context.Context, query string, args ...any) (Revision, error) {
	var rev Revision
	var data string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&rev.Project, &rev.Seq, &rev.Hash, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return Revision{}, ErrNotFound
	}
	if err != nil {
		return Revision{}, fmt.Errorf("query revision: %w", err)
	}
	rev.Document, err = unmarshalDocument(data)
	if err != nil {
		return Revision{}, err
	}
	return rev, nil
}

// Revisions lists the revisions of project without their documents, oldest
// first.
func (s *Store) Revisions(ctx context.Context, project string) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT project, seq, hash FROM revisions
		WHERE project = ?
		ORDER BY seq ASC
	`, project)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer rows.Close()

	revisions := []Revision{}
	for rows.Next() {
		var rev Revision
		if err := rows.Scan(&rev.Project, &rev.Seq, &rev.Hash); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}
	return revisions, nil
}

// Edits returns the edit log of project ordered by seq, then id.
//
// Returns an empty slice (not nil) if the project has no edits.
func (s *Store) Edits(ctx context.Context, project string) ([]Edit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project, seq, action, args, before_hash, after_hash
		FROM edits
		WHERE project = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, project)
	if err != nil {
		return nil, fmt.Errorf("query edits: %w", err)
	}
	defer rows.Close()

	edits := []Edit{}
	for rows.Next() {
		var e Edit
		var args string
		if err := rows.Scan(&e.ID, &e.Project, &e.Seq, &e.Action, &args, &e.BeforeHash, &e.AfterHash); err != nil {
			return nil, fmt.Errorf("scan edit: %w", err)
		}
		if err := json.Unmarshal([]byte(args), &e.Args); err != nil {
			return nil, fmt.Errorf("unmarshal edit args: %w", err)
		}
		edits = append(edits, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edits: %w", err)
	}
	return edits, nil
}

// Projects lists project names in binary order.
func (s *Store) Projects(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM projects ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return names, nil
}
