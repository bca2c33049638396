package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TagRepo: tag dan like generik. Target dipetakan ke (kind, target_id),
// kind enum tertutup (lihat ref.go).
type TagRepo struct{ DB *pgxpool.Pool }

func (r *TagRepo) ListTags(ctx context.Context) ([]Tag, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, label FROM tags ORDER BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Label); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TagRepo) CreateTag(ctx context.Context, label string) (Tag, error) {
	if label == "" {
		return Tag{}, fmt.Errorf("%w: label required", ErrInvalidInput)
	}
	t := Tag{ID: uuid.NewString(), Label: label}
	if _, err := r.DB.Exec(ctx,
		`INSERT INTO tags(id, label) VALUES ($1,$2)`, t.ID, t.Label); err != nil {
		return Tag{}, err
	}
	return t, nil
}

func (r *TagRepo) DeleteTag(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM tags WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", id, ErrNotFound)
	}
	return nil
}

// Attach pasang tag ke target; idempotent untuk pasangan yang sama.
func (r *TagRepo) Attach(ctx context.Context, tagID string, kind RefKind, targetID string) (TaggedItem, error) {
	var label string
	err := r.DB.QueryRow(ctx, `SELECT label FROM tags WHERE id=$1`, tagID).Scan(&label)
	if errors.Is(err, pgx.ErrNoRows) {
		return TaggedItem{}, fmt.Errorf("tag %s: %w", tagID, ErrNotFound)
	}
	if err != nil {
		return TaggedItem{}, err
	}

	it := TaggedItem{TagID: tagID, Kind: kind, TargetID: targetID, Label: label}
	err = r.DB.QueryRow(ctx, `
		INSERT INTO tagged_items(id, tag_id, kind, target_id)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (tag_id, kind, target_id) DO UPDATE SET tag_id = EXCLUDED.tag_id
		RETURNING id`,
		uuid.NewString(), tagID, kind, targetID,
	).Scan(&it.ID)
	if err != nil {
		return TaggedItem{}, err
	}
	return it, nil
}

func (r *TagRepo) Detach(ctx context.Context, tagID string, kind RefKind, targetID string) error {
	ct, err := r.DB.Exec(ctx,
		`DELETE FROM tagged_items WHERE tag_id=$1 AND kind=$2 AND target_id=$3`,
		tagID, kind, targetID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("tagged item: %w", ErrNotFound)
	}
	return nil
}

// TagsFor: semua tag yang nempel di satu target.
func (r *TagRepo) TagsFor(ctx context.Context, kind RefKind, targetID string) ([]TaggedItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT ti.id, ti.tag_id, ti.kind, ti.target_id, t.label
		FROM tagged_items ti
		JOIN tags t ON t.id = ti.tag_id
		WHERE ti.kind=$1 AND ti.target_id=$2
		ORDER BY t.label`, kind, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TaggedItem
	for rows.Next() {
		var it TaggedItem
		if err := rows.Scan(&it.ID, &it.TagID, &it.Kind, &it.TargetID, &it.Label); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *TagRepo) Like(ctx context.Context, userID string, kind RefKind, targetID string) (LikedItem, error) {
	if userID == "" {
		return LikedItem{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	it := LikedItem{UserID: userID, Kind: kind, TargetID: targetID}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO liked_items(id, user_id, kind, target_id)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (user_id, kind, target_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id`,
		uuid.NewString(), userID, kind, targetID,
	).Scan(&it.ID)
	if err != nil {
		return LikedItem{}, err
	}
	return it, nil
}

func (r *TagRepo) Unlike(ctx context.Context, userID string, kind RefKind, targetID string) error {
	ct, err := r.DB.Exec(ctx,
		`DELETE FROM liked_items WHERE user_id=$1 AND kind=$2 AND target_id=$3`,
		userID, kind, targetID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("liked item: %w", ErrNotFound)
	}
	return nil
}

func (r *TagRepo) LikedBy(ctx context.Context, userID string) ([]LikedItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_id, kind, target_id
		FROM liked_items WHERE user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LikedItem
	for rows.Next() {
		var it LikedItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.Kind, &it.TargetID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
