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

package dtos

import (
	"time"

	"github.com/google/uuid"
)

var (
	Languages = []string{"english", "spanish", "french", "german", "chinese"}
	Regions   = []string{"us", "eu", "uk", "asia", "africa"}
	Themes    = []string{"system", "light", "dark"}
	Roles     = []string{"Administrator", "Manager", "Analyst", "Auditor", "Viewer"}
)

type UserSettingsDTO struct {
	ID                   uuid.UUID `json:"id"`
	UserID               string    `json:"userId" validate:"required"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
	Language             string    `json:"language" validate:"required,oneof=english spanish french german chinese"`
	Region               string    `json:"region" validate:"required,oneof=us eu uk asia africa"`
	Theme                string    `json:"theme" validate:"required,oneof=system light dark"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// DefaultUserSettings is what a user without a stored row sees.
func DefaultUserSettings(userID string) UserSettingsDTO {
	return UserSettingsDTO{
		UserID:               userID,
		NotificationsEnabled: true,
		Language:             "english",
		Region:               "us",
		Theme:                "system",
	}
}

type UserSettingsPatchRequest struct {
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
	Language             *string `json:"language" validate:"omitempty,oneof=english spanish french german chinese"`
	Region               *string `json:"region" validate:"omitempty,oneof=us eu uk asia africa"`
	Theme                *string `json:"theme" validate:"omitempty,oneof=system light dark"`
}

type UserProfileDTO struct {
	ID           string    `json:"id" validate:"required"`
	FullName     string    `json:"fullName" validate:"omitempty,min=2"`
	Email        string    `json:"email" validate:"omitempty,email"`
	Role         string    `json:"role" validate:"omitempty,oneof=Administrator Manager Analyst Auditor Viewer"`
	Organization string    `json:"organization"`
	LogoURL      string    `json:"logoUrl" validate:"omitempty,url"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type UserProfilePatchRequest struct {
	FullName     *string `json:"fullName" validate:"omitempty,min=2"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Role         *string `json:"role" validate:"omitempty,oneof=Administrator Manager Analyst Auditor Viewer"`
	Organization *string `json:"organization"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}
