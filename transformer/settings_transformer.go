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

package transformer

import (
	"github.com/l3montree-dev/supplyguard/database/models"
	"github.com/l3montree-dev/supplyguard/dtos"
)

func UserSettingsModelToDTO(m models.UserSettings) dtos.UserSettingsDTO {
	return dtos.UserSettingsDTO{
		ID:                   m.ID,
		UserID:               m.UserID,
		NotificationsEnabled: m.NotificationsEnabled,
		Language:             m.Language,
		Region:               m.Region,
		Theme:                m.Theme,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func UserSettingsDTOToModel(d dtos.UserSettingsDTO) models.UserSettings {
	return models.UserSettings{
		UserID:               d.UserID,
		NotificationsEnabled: d.NotificationsEnabled,
		Language:             d.Language,
		Region:               d.Region,
		Theme:                d.Theme,
	}
}

// ApplyUserSettingsPatch returns the settings with the provided fields replaced.
func ApplyUserSettingsPatch(d dtos.UserSettingsDTO, p dtos.UserSettingsPatchRequest) dtos.UserSettingsDTO {
	if p.NotificationsEnabled != nil {
		d.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.Language != nil {
		d.Language = *p.Language
	}
	if p.Region != nil {
		d.Region = *p.Region
	}
	if p.Theme != nil {
		d.Theme = *p.Theme
	}
	return d
}

func UserProfileModelToDTO(m models.Profile) dtos.UserProfileDTO {
	return dtos.UserProfileDTO{
		ID:           m.ID,
		FullName:     m.FullName,
		Email:        m.Email,
		Role:         m.Role,
		Organization: m.Organization,
		LogoURL:      m.LogoURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UserProfileDTOToModel keeps the id, profiles are keyed by the user id.
func UserProfileDTOToModel(d dtos.UserProfileDTO) models.Profile {
	return models.Profile{
		ID:           d.ID,
		FullName:     d.FullName,
		Email:        d.Email,
		Role:         d.Role,
		Organization: d.Organization,
		LogoURL:      d.LogoURL,
	}
}

func ApplyUserProfilePatch(d dtos.UserProfileDTO, p dtos.UserProfilePatchRequest) dtos.UserProfileDTO {
	if p.FullName != nil {
		d.FullName = *p.FullName
	}
	if p.Email != nil {
		d.Email = *p.Email
	}
	if p.Role != nil {
		d.Role = *p.Role
	}
	if p.Organization != nil {
		d.Organization = *p.Organization
	}
	if p.LogoURL != nil {
		d.LogoURL = *p.LogoURL
	}
	return d
}
