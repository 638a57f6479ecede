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

package pages

import (
	"strconv"
	"strings"

	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/presentation"
	"github.com/l3montree-dev/supplyguard/synchronization"
)

const (
	SettingsPath = "/settings"
	ProfilePath  = SettingsPath + "/profile"
)

func regionOptions() []presentation.Option {
	options := make([]presentation.Option, len(dtos.Regions))
	for i, r := range dtos.Regions {
		label := strings.ToUpper(r)
		switch r {
		case "asia", "africa":
			label = presentation.Humanize(r)
		}
		options[i] = presentation.Option{Value: r, Label: label}
	}
	return options
}

var SettingsForm = presentation.Form{
	SubmitLabel: "Save Settings",
	Fields: []presentation.Field{
		{Name: "notificationsEnabled", Label: "Notifications", Type: presentation.FieldSelect, Options: []presentation.Option{{Value: "true", Label: "Enabled"}, {Value: "false", Label: "Disabled"}}, Rule: "required"},
		{Name: "language", Label: "Language", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.Languages), Rule: "required"},
		{Name: "region", Label: "Region", Type: presentation.FieldSelect, Options: regionOptions(), Rule: "required"},
		{Name: "theme", Label: "Theme", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.Themes), Rule: "required"},
	},
}

var ProfileForm = presentation.Form{
	SubmitLabel: "Save Profile",
	Fields: []presentation.Field{
		{Name: "fullName", Label: "Full Name", Type: presentation.FieldText, Rule: "omitempty,min=2"},
		{Name: "email", Label: "Email", Type: presentation.FieldEmail, Rule: "omitempty,email"},
		{Name: "role", Label: "Role", Type: presentation.FieldSelect, Options: presentation.OptionsOf(dtos.Roles)},
		{Name: "organization", Label: "Organization", Type: presentation.FieldText},
		{Name: "logoUrl", Label: "Logo URL", Type: presentation.FieldText, Placeholder: "https://", Rule: "omitempty,url"},
	},
}

func SettingsDefaults(s dtos.UserSettingsDTO) map[string]string {
	return map[string]string{
		"notificationsEnabled": strconv.FormatBool(s.NotificationsEnabled),
		"language":             s.Language,
		"region":               s.Region,
		"theme":                s.Theme,
	}
}

func ProfileDefaults(p dtos.UserProfileDTO) map[string]string {
	return map[string]string{
		"fullName":     p.FullName,
		"email":        p.Email,
		"role":         p.Role,
		"organization": p.Organization,
		"logoUrl":      p.LogoURL,
	}
}

type SettingsView struct {
	Title    string
	Settings *DialogView
	Profile  *DialogView
	Error    string
}

// SettingsPage keeps both forms open. A failed submission replaces the
// matching form with its dialog.
func SettingsPage(settings synchronization.QueryState[dtos.UserSettingsDTO], profile synchronization.QueryState[dtos.UserProfileDTO]) SettingsView {
	view := SettingsView{Title: "Settings"}

	s := presentation.NewDialog(SettingsForm)
	s.Open("Preferences", SettingsDefaults(settings.Data))
	view.Settings = NewDialogView(s, SettingsPath, SettingsPath)

	p := presentation.NewDialog(ProfileForm)
	p.Open("Profile", ProfileDefaults(profile.Data))
	view.Profile = NewDialogView(p, ProfilePath, SettingsPath)

	for _, err := range []error{settings.Err, profile.Err} {
		if err != nil {
			view.Error = err.Error()
			break
		}
	}
	return view
}
