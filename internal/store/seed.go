package store

import (
	"shortboard/pkg/models"
	"shortboard/pkg/roles"
)

// SeedDatabase is the hardcoded initial document used when no blob exists
// yet: the built-in admin account and four empty collections.
func SeedDatabase() *models.Database {
	return &models.Database{
		Users: []models.User{
			{ID: "u-admin", Username: "admin", Role: roles.Admin},
		},
		ERPRows:   []models.ERPRawRow{},
		Tracking:  []models.TrackingRow{},
		Reference: []models.ReferenceRow{},
	}
}
