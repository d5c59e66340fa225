package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atharvapawar/bustrack/internal/pkg/auth"
	"github.com/atharvapawar/bustrack/internal/pkg/logger"
)

// HashLegacyCredentials is a one-time data migration for rows imported from
// the schema variant that stored the raw PRN as the credential. Every
// students row whose stored credential is not a bcrypt digest gets hashed in
// place, so the login path only ever compares against bcrypt. Safe to run on
// every startup; already-hashed rows are left untouched.
func HashLegacyCredentials(ctx context.Context, db *pgxpool.Pool) error {
	rows, err := db.Query(ctx, `SELECT prn, password FROM students`)
	if err != nil {
		return fmt.Errorf("failed to scan students for legacy credentials: %w", err)
	}
	defer rows.Close()

	type legacyRow struct {
		prn    string
		secret string
	}
	var legacy []legacyRow

	for rows.Next() {
		var prn, password string
		if err := rows.Scan(&prn, &password); err != nil {
			return fmt.Errorf("failed to scan student row: %w", err)
		}
		if !auth.IsBcryptDigest(password) {
			legacy = append(legacy, legacyRow{prn: prn, secret: password})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating student rows: %w", err)
	}

	if len(legacy) == 0 {
		return nil
	}

	logger.Info().Int("count", len(legacy)).Msg("Hashing legacy plaintext credentials")

	for _, row := range legacy {
		hash, err := auth.HashPassword(row.secret)
		if err != nil {
			return fmt.Errorf("failed to hash credential for %s: %w", row.prn, err)
		}
		_, err = db.Exec(ctx, `UPDATE students SET password = $1, updated_at = NOW() WHERE prn = $2`,
			hash, row.prn)
		if err != nil {
			return fmt.Errorf("failed to store hashed credential for %s: %w", row.prn, err)
		}
	}

	logger.Info().Int("count", len(legacy)).Msg("Legacy credentials migrated to bcrypt")
	return nil
}
