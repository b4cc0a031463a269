package repository

import (
	"errors"
	"regexp"
	"strings"

	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

var pgKeyDetail = regexp.MustCompile(`Key \((.+?)\)=`)

// uniqueIndexFields resolves index names when the driver reports no column list
var uniqueIndexFields = map[string][]string{
	"idx_partners_name":             {"name"},
	"idx_partners_code":             {"code"},
	"idx_clients_partner_code":      {"partner_id", "code"},
	"idx_projects_client_code":      {"client_id", "code"},
	"idx_environments_project_name": {"project_id", "name"},
	"idx_users_username":            {"username"},
	"idx_user_profiles_user":        {"user_id"},
}

// translateError maps driver and gorm errors to domain error kinds
func translateError(entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.NotFoundError{Entity: entity}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &domain.DuplicateKeyError{Entity: entity, Fields: pgUniqueFields(pgErr)}
		case pgForeignKeyViolation:
			return &domain.NotFoundError{Entity: entity + " reference"}
		case pgCheckViolation:
			return domain.NewInvalidValueError(entity, pgErr.ConstraintName, "")
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return &domain.DuplicateKeyError{Entity: entity, Fields: sqliteUniqueFields(liteErr.Error())}
		case sqlite3.ErrConstraintForeignKey:
			return &domain.NotFoundError{Entity: entity + " reference"}
		case sqlite3.ErrConstraintCheck:
			return domain.NewInvalidValueError(entity, "check", "")
		}
	}
	return err
}

func pgUniqueFields(pgErr *pgconn.PgError) []string {
	if m := pgKeyDetail.FindStringSubmatch(pgErr.Detail); m != nil {
		return splitColumns(m[1])
	}
	if fields, ok := uniqueIndexFields[pgErr.ConstraintName]; ok {
		return fields
	}
	return []string{pgErr.ConstraintName}
}

// sqliteUniqueFields parses "UNIQUE constraint failed: clients.partner_id, clients.code"
func sqliteUniqueFields(msg string) []string {
	_, cols, found := strings.Cut(msg, "constraint failed: ")
	if !found {
		return nil
	}
	fields := splitColumns(cols)
	for i, f := range fields {
		if _, col, ok := strings.Cut(f, "."); ok {
			fields[i] = col
		}
	}
	return fields
}

func splitColumns(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// deleteByID removes a record and reports NotFound when nothing matched
func deleteByID(db *gorm.DB, entity string, model interface{}, id interface{}) error {
	result := db.Delete(model, "id = ?", id)
	if result.Error != nil {
		return translateError(entity, result.Error)
	}
	if result.RowsAffected == 0 {
		return &domain.NotFoundError{Entity: entity}
	}
	return nil
}
