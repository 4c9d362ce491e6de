package services

import (
	"fmt"
	"strings"

	"github.com/alpixn/site/pkg/internal/database"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FilterWithFuzzySearch keeps rows where probe appears, ignoring case, in any of
// the text columns or in any single element of the JSON array listColumns.
func FilterWithFuzzySearch(tx *gorm.DB, probe string, columns []string, listColumns ...string) *gorm.DB {
	if len(probe) == 0 || len(columns)+len(listColumns) == 0 {
		return tx
	}

	dialect := tx.Dialector.Name()
	conditions := lo.Map(columns, func(column string, _ int) string {
		return fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, foldExpr(dialect, column))
	})
	conditions = append(conditions, lo.Map(listColumns, func(column string, _ int) string {
		return listElementMatch(dialect, column)
	})...)

	pattern := "%" + likeEscaper.Replace(strings.ToLower(probe)) + "%"
	args := lo.Times(len(conditions), func(_ int) any {
		return pattern
	})

	return tx.Where("("+strings.Join(conditions, " OR ")+")", args...)
}

func foldExpr(dialect, expr string) string {
	if dialect == "sqlite" {
		return fmt.Sprintf("%s(%s)", database.FoldFunc, expr)
	}
	return fmt.Sprintf("LOWER(%s)", expr)
}

func listElementMatch(dialect, column string) string {
	if dialect == "sqlite" {
		// JSON columns may be stored as blobs, json_each needs the text form.
		return fmt.Sprintf(
			`EXISTS (SELECT 1 FROM json_each(CAST(%s AS TEXT)) WHERE %s LIKE ? ESCAPE '\')`,
			column, foldExpr(dialect, "json_each.value"),
		)
	}
	return fmt.Sprintf(
		`EXISTS (SELECT 1 FROM jsonb_array_elements_text(%s::jsonb) AS element(value) WHERE %s LIKE ? ESCAPE '\')`,
		column, foldExpr(dialect, "element.value"),
	)
}
