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

package presentation

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/l3montree-dev/supplyguard/shared"
)

type DialogStatus string

const (
	DialogClosed     DialogStatus = "closed"
	DialogOpen       DialogStatus = "open"
	DialogSubmitting DialogStatus = "submitting"
)

var (
	ErrDialogClosed  = errors.New("dialog is not open")
	ErrSubmitPending = errors.New("a submission is already pending")
	ErrInvalidForm   = errors.New("form contains invalid values")
)

// Dialog drives a form through closed -> open -> submitting -> closed | open(error).
type Dialog struct {
	mu sync.Mutex

	Title  string
	Form   Form
	Status DialogStatus
	Values map[string]string
	// Errors holds one message per invalid field
	Errors map[string]string
	// Error is the message of a failed submission
	Error string
}

func NewDialog(form Form) *Dialog {
	return &Dialog{Form: form, Status: DialogClosed}
}

// Open resets every field to the defaults.
func (d *Dialog) Open(title string, defaults map[string]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Title = title
	d.Status = DialogOpen
	d.Values = make(map[string]string, len(d.Form.Fields))
	for _, f := range d.Form.Fields {
		d.Values[f.Name] = defaults[f.Name]
	}
	d.Errors = map[string]string{}
	d.Error = ""
}

// Set changes a field of an open dialog.
func (d *Dialog) Set(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Status != DialogOpen {
		return
	}
	d.Values[name] = value
}

// Cancel discards the edits.
func (d *Dialog) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Status = DialogClosed
	d.Values = nil
	d.Errors = nil
	d.Error = ""
}

// SubmitDisabled is true while a submission is pending or a rule fails.
func (d *Dialog) SubmitDisabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Status != DialogOpen || len(d.Form.Validate(d.Values)) > 0
}

// Submit validates the values and calls submit with them. submit is never
// called while a submission is pending or while any rule fails.
func (d *Dialog) Submit(ctx context.Context, submit func(ctx context.Context, values map[string]string) error) error {
	d.mu.Lock()
	switch d.Status {
	case DialogClosed:
		d.mu.Unlock()
		return ErrDialogClosed
	case DialogSubmitting:
		d.mu.Unlock()
		return ErrSubmitPending
	}

	if errs := d.Form.Validate(d.Values); len(errs) > 0 {
		d.Errors = errs
		d.mu.Unlock()
		return ErrInvalidForm
	}
	d.Errors = map[string]string{}
	d.Error = ""
	d.Status = DialogSubmitting
	values := maps.Clone(d.Values)
	d.mu.Unlock()

	err := submit(ctx, values)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.Status = DialogOpen
		d.Error = err.Error()
		var validationErr *shared.ValidationError
		if errors.As(err, &validationErr) {
			maps.Copy(d.Errors, validationErr.Fields)
		}
		return err
	}

	d.Status = DialogClosed
	d.Values = nil
	return nil
}

// ConfirmDialog guards a destructive action behind an explicit confirmation.
type ConfirmDialog struct {
	Title       string
	Description string
	// Target identifies what is about to be affected, e.g. the id of a row
	Target string
	Status DialogStatus
}

func (c *ConfirmDialog) Open(title, description, target string) {
	c.Title = title
	c.Description = description
	c.Target = target
	c.Status = DialogOpen
}

// Confirm runs action only for an open dialog and an explicit confirmation.
func (c *ConfirmDialog) Confirm(ctx context.Context, confirmed bool, action func(ctx context.Context, target string) error) error {
	if c.Status != DialogOpen {
		return ErrDialogClosed
	}
	if !confirmed {
		c.Status = DialogClosed
		return nil
	}

	c.Status = DialogSubmitting
	if err := action(ctx, c.Target); err != nil {
		c.Status = DialogOpen
		return err
	}
	c.Status = DialogClosed
	return nil
}
