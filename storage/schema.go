package storage

import (
	"context"
	"fmt"
	"strings"

	"bid-finder/models"
	"bid-finder/query"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// metadataColumns sind die Spalten aus additional_info_log, die beide Views anhängen.
var metadataColumns = []string{
	query.ColInvestor,
	query.ColApprovalDecision,
	query.ColApprovalDate,
	query.ColExpiryDate,
	query.ColPlace,
	query.ColSelectionMethod,
	query.ColValidity,
}

// Tables sind alle vom Loader befüllten Basistabellen.
var Tables = []any{
	&models.StandardRecord{},
	&models.ExtendedRecord{},
	&models.TenderInfo{},
	&models.RunHistory{},
}

// viewSQL baut die View: Positionstabelle LEFT JOIN Metadaten über Mã TBMT.
func viewSQL(view, table string) string {
	cols := make([]string, len(metadataColumns))
	for i, c := range metadataColumns {
		cols[i] = "ai." + pgx.Identifier{c}.Sanitize()
	}
	key := pgx.Identifier{query.ColTenderCode}.Sanitize()
	return fmt.Sprintf(
		"CREATE OR REPLACE VIEW %s AS SELECT r.*, %s FROM %s r LEFT JOIN %s ai ON ai.%s = r.%s",
		view, strings.Join(cols, ", "), table, (models.TenderInfo{}).TableName(), key, key,
	)
}

// Bootstrap legt Tabellen, Indizes und Views neu an. Vorhandene Daten gehen verloren.
func (s *Store) Bootstrap(ctx context.Context) error {
	db := s.DB.WithContext(ctx)

	for _, ds := range query.Datasets {
		if err := db.Exec("DROP VIEW IF EXISTS " + ds.View + " CASCADE").Error; err != nil {
			return fmt.Errorf("drop view %s: %w", ds.View, err)
		}
	}
	if err := db.Migrator().DropTable(Tables...); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	if err := db.AutoMigrate(Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	s.logger.Info("Tables created", zap.Int("tables", len(Tables)))

	for _, ds := range query.Datasets {
		if err := db.Exec(viewSQL(ds.View, ds.BaseTable)).Error; err != nil {
			return fmt.Errorf("create view %s: %w", ds.View, err)
		}
		s.logger.Info("View created", zap.String("view", ds.View))
	}
	return nil
}
