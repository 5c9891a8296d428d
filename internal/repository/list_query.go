package repository

import (
	"strings"

	"content-admin/internal/domain/entity"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applyListFilter ANDs the equality filters and a case-insensitive substring search
// OR'd across searchColumns. Filter keys are column names chosen by the caller.
func applyListFilter(db *gorm.DB, filter entity.ListFilter, searchColumns []string) *gorm.DB {
	for column, value := range filter.Equals {
		db = db.Where(column+" = ?", value)
	}

	term := strings.TrimSpace(filter.Search)
	if term == "" || len(searchColumns) == 0 {
		return db
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	conds := make([]string, 0, len(searchColumns))
	args := make([]interface{}, 0, len(searchColumns))
	for _, column := range searchColumns {
		conds = append(conds, "LOWER("+column+`) LIKE ? ESCAPE '\'`)
		args = append(args, pattern)
	}
	return db.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// findPage counts the filtered rows and loads one page into dest, newest first.
func findPage(query *gorm.DB, filter entity.ListFilter, dest interface{}) (int64, error) {
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}

	page := query.Order("id DESC")
	if filter.PageSize > 0 {
		page = page.Limit(filter.PageSize).Offset(filter.Offset())
	}
	if err := page.Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// taken reports whether a row other than excludeID has value in column.
func taken(db *gorm.DB, model interface{}, column string, value interface{}, excludeID uint) (bool, error) {
	var count int64
	query := db.Model(model).Where(column+" = ?", value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
