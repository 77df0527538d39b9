package store

import (
	"github.com/jinzhu/gorm"

	"github.com/vitalis-inc/vitalis-api/schema"
)

// vitalis main datastore
type VitalisCore interface {
	Ping() error

	// Account
	CreateAccount(profile schema.UserProfile) (*schema.UserProfile, error)
	GetAccount(id string) (*schema.UserProfile, error)
	UpdateAccountProfile(id string, updates ProfileUpdates) error
	DeleteAccount(id string) error
}

// ProfileUpdates carries the user-editable profile fields. Nil fields
// are left untouched.
type ProfileUpdates struct {
	Name          *string
	Image         *string
	Sex           *schema.Sex
	HealthHistory *schema.HealthHistory
}

// VitalisStore is an implementation of VitalisCore
type VitalisStore struct {
	ormDB *gorm.DB
	mongo MongoStore
}

func NewVitalisStore(ormDB *gorm.DB, mongo MongoStore) *VitalisStore {
	return &VitalisStore{
		ormDB: ormDB,
		mongo: mongo,
	}
}

// Ping is to check the storage health status
func (s *VitalisStore) Ping() error {
	return s.ormDB.DB().Ping()
}
