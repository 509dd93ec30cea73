// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const credentialsTable = "credentials"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildGetCredentialQuery(key string) (string, []any, error) {
	query, args, err := builder.
		Select("value").
		From(credentialsTable).
		Where(sq.Eq{"name": key}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpsertCredentialQuery(key, value string, now time.Time) (string, []any, error) {
	query, args, err := builder.
		Insert(credentialsTable).
		Columns("name", "value", "updated_at").
		Values(key, value, now).
		Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteCredentialQuery(key string) (string, []any, error) {
	query, args, err := builder.
		Delete(credentialsTable).
		Where(sq.Eq{"name": key}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
