package models

// All lists every migrated entity, in dependency-free order.
func All() []any {
	return []any{
		&Staff{},
		&Customer{},
		&Membership{},
		&Project{},
		&Consultation{},
		&Appointment{},
		&Treatment{},
		&Order{},
		&Campaign{},
		&AuditLog{},
	}
}
