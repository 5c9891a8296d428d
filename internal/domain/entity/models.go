package entity

// Models lists every persisted type in dependency order.
func Models() []interface{} {
	return []interface{}{
		&Identity{},
		&AdminProfile{},
		&MobileProfile{},
		&Professional{},
		&ProfessionalReview{},
		&Book{},
		&Event{},
		&Material{},
		&AuditLog{},
	}
}
