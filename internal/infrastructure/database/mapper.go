package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"marktrans/internal/domain/entities"
)

type translationRow struct {
	Locale    string             `db:"locale"`
	Key       string             `db:"key"`
	Domain    pgtype.Text        `db:"domain"`
	Content   string             `db:"content"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
	UpdatedAt pgtype.Timestamptz `db:"updated_at"`
}

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

// domainToText stores an empty domain as NULL.
func domainToText(domain string) pgtype.Text {
	return pgtype.Text{String: domain, Valid: domain != ""}
}

func translationToDomain(r translationRow) entities.Translation {
	return entities.Translation{
		Locale:    r.Locale,
		Key:       r.Key,
		Domain:    r.Domain.String,
		Content:   r.Content,
		CreatedAt: pgtypeTimestamptzToTime(r.CreatedAt),
		UpdatedAt: pgtypeTimestamptzToTime(r.UpdatedAt),
	}
}
