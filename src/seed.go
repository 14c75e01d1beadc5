package main

import (
	"log"
	"os"

	"ems/src/db"
	"ems/src/models"
	"ems/src/types"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seedData bootstraps a fresh database with the admin account and the
// starting set of clusters and organizations. Safe to run repeatedly:
// existing rows are left alone.
func seedData() error {
	gdb := db.GetDb()
	return gdb.Transaction(func(tx *gorm.DB) error {
		adminEmail := os.Getenv("ADMIN_EMAIL")
		adminPassword := os.Getenv("ADMIN_PASSWORD")
		if adminEmail == "" || adminPassword == "" {
			log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		} else {
			hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			admin := models.User{
				Email:    adminEmail,
				Password: string(hashed),
				Role:     types.ROLE_ADMIN,
				IsActive: true,
			}
			if err := tx.
				Clauses(clause.OnConflict{DoNothing: true}).
				Create(&admin).Error; err != nil {
				return err
			}
		}

		clusters := map[string][]string{
			"Sciences Cluster":     {"Computer Studies Society", "Mathematics Society"},
			"Arts Cluster":         {"Literature Circle"},
			"Professional Cluster": {"Engineering Guild"},
		}
		for clusterName, orgNames := range clusters {
			parent := models.OrganizationParent{Name: clusterName}
			if err := tx.
				Where(&models.OrganizationParent{Name: clusterName}).
				FirstOrCreate(&parent).Error; err != nil {
				return err
			}
			for _, orgName := range orgNames {
				org := models.Organization{
					Name:     orgName,
					Slug:     slug.Make(orgName),
					ParentID: &parent.ID,
				}
				if err := tx.
					Where(&models.Organization{Slug: org.Slug}).
					FirstOrCreate(&org).Error; err != nil {
					return err
				}
			}
		}
		log.Println("Seed complete")
		return nil
	})
}
