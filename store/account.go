package store

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/vitalis-inc/vitalis-api/schema"
)

var ErrAccountTaken = fmt.Errorf("the account id has already been registered")

// CreateAccount registers a user profile. The id is supplied by the
// identity provider and treated as opaque.
func (s *VitalisStore) CreateAccount(profile schema.UserProfile) (*schema.UserProfile, error) {
	if profile.HealthHistory == nil {
		profile.HealthHistory = schema.HealthHistory{}
	}

	if err := s.ormDB.Create(&profile).Error; err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrAccountTaken
		}
		return nil, err
	}

	return &profile, nil
}

// GetAccount returns the profile of a given user id
func (s *VitalisStore) GetAccount(id string) (*schema.UserProfile, error) {
	var p schema.UserProfile
	if err := s.ormDB.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateAccountProfile updates the user-editable profile fields
func (s *VitalisStore) UpdateAccountProfile(id string, updates ProfileUpdates) error {
	var p schema.UserProfile
	if err := s.ormDB.Where("id = ?", id).First(&p).Error; err != nil {
		return err
	}

	if updates.Name != nil {
		p.Name = *updates.Name
	}
	if updates.Image != nil {
		p.Image = *updates.Image
	}
	if updates.Sex != nil {
		p.Sex = *updates.Sex
	}
	if updates.HealthHistory != nil {
		p.HealthHistory = *updates.HealthHistory
	}

	return s.ormDB.Save(&p).Error
}

// DeleteAccount removes a user profile permanently
func (s *VitalisStore) DeleteAccount(id string) error {
	return s.ormDB.Delete(schema.UserProfile{}, "id = ?", id).Error
}
