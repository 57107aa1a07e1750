package models

func ModelsToAutoMigrate() []interface{} {
	return []interface{}{
		&PersistentIdentifier{}, // Must be first - redirects reference it
		&Redirect{},
		&RecordIdentifier{},
	}
}
