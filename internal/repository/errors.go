// Package repository defines the error contract shared by the persistence
// adapters and the services that consume them.
package repository

import "errors"

// ErrNotFound reports a missing record. Services also return it for records
// owned by another farmer so existence is never leaked.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyGenerated reports a second generation attempt for a farm plan
// that already has tasks. Generation is at-most-once per plan.
var ErrAlreadyGenerated = errors.New("tasks already generated for farm plan")

// ErrAlreadyCompleted reports a completion attempt on a task whose completion
// event was already recorded.
var ErrAlreadyCompleted = errors.New("task already completed")
