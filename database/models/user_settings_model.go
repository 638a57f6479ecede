// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package models

import "time"

// UserSettings holds one row per user, upserted by user_id.
type UserSettings struct {
	Model
	UserID               string `json:"user_id" gorm:"type:text;not null;uniqueIndex"`
	NotificationsEnabled bool   `json:"notifications_enabled" gorm:"not null"`
	Language             string `json:"language" gorm:"type:text;not null"`
	Region               string `json:"region" gorm:"type:text;not null"`
	Theme                string `json:"theme" gorm:"type:text;not null"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

// Profile is keyed by the id of the user it belongs to.
type Profile struct {
	ID           string    `json:"id" gorm:"primarykey;type:text"`
	FullName     string    `json:"full_name" gorm:"type:text"`
	Email        string    `json:"email" gorm:"type:text"`
	Role         string    `json:"role" gorm:"type:text"`
	Organization string    `json:"organization" gorm:"type:text"`
	LogoURL      string    `json:"logo_url" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p Profile) GetID() string {
	return p.ID
}
