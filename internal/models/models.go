// Package models defines the persisted marketplace entities.
package models

// All returns every model managed by migrations.
func All() []any {
	return []any{
		&User{},
		&SiteSettings{},
		&Product{},
		&Order{},
		&Community{},
		&Category{},
		&Post{},
		&Visit{},
		&AuditLog{},
	}
}
