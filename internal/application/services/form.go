package services

import (
	"context"
	"sync"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/ports"
)

// FormMode is the label of the form's submit action
type FormMode string

const (
	FormModeAdd    FormMode = "Add"
	FormModeUpdate FormMode = "Update"
)

// Form is the Idle / Editing(id) state machine that sits in front of a
// Controller. Idle submits create records; Editing(id) submits overwrite
// record id. Every successful submit returns the form to Idle.
type Form[T entities.Record[T], F ports.FormFields[T]] struct {
	controller *Controller[T]
	fill       func(T) F

	mu        sync.Mutex
	editing   bool
	editingID int
	fields    F
}

// NewForm creates an Idle form. fill pre-fills fields from a stored record.
func NewForm[T entities.Record[T], F ports.FormFields[T]](controller *Controller[T], fill func(T) F) *Form[T, F] {
	return &Form[T, F]{controller: controller, fill: fill}
}

// Editing reports the record being edited, if any
func (f *Form[T, F]) Editing() (id int, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editingID, f.editing
}

// Mode is FormModeUpdate while editing and FormModeAdd otherwise
func (f *Form[T, F]) Mode() FormMode {
	if _, ok := f.Editing(); ok {
		return FormModeUpdate
	}
	return FormModeAdd
}

// Fields returns the current field values
func (f *Form[T, F]) Fields() F {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// SelectForEdit moves to Editing(id) with fields loaded from the record
func (f *Form[T, F]) SelectForEdit(ctx context.Context, id int) (F, error) {
	rec, err := f.controller.Get(ctx, id)
	if err != nil {
		var zero F
		return zero, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.editing = true
	f.editingID = id
	f.fields = f.fill(rec)
	return f.fields, nil
}

// Reset returns to Idle with empty fields
func (f *Form[T, F]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *Form[T, F]) reset() {
	var zero F
	f.editing = false
	f.editingID = 0
	f.fields = zero
}

// Submit validates fields, then creates (Idle) or overwrites (Editing) a
// record. On failure nothing is stored and the state is kept.
func (f *Form[T, F]) Submit(ctx context.Context, fields F) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var zero T
	if err := entities.ValidateStruct(fields); err != nil {
		f.fields = fields
		return zero, err
	}

	var (
		rec T
		err error
	)
	if f.editing {
		rec, err = f.controller.Update(ctx, f.editingID, fields.Entity())
	} else {
		rec, err = f.controller.Create(ctx, fields.Entity())
	}
	if err != nil {
		f.fields = fields
		return zero, err
	}

	f.reset()
	return rec, nil
}

// Delete removes record id from any state. Deleting the record being edited
// returns the form to Idle.
func (f *Form[T, F]) Delete(ctx context.Context, id int) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	removed, err := f.controller.Delete(ctx, id)
	if err != nil {
		return removed, err
	}

	if f.editing && f.editingID == id {
		f.reset()
	}
	return removed, nil
}
