package service

import (
	"fmt"
	"strings"

	"github.com/mtlprog/workforcemgmt/internal/domain"
)

// validateCreate checks the enumerated fields of a create item.
// Priority may be left empty.
func validateCreate(p CreateTaskParams) error {
	if !p.ReferenceType.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidReferenceType, p.ReferenceType)
	}
	if !p.Kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTaskKind, p.Kind)
	}
	if p.Priority != "" && !p.Priority.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPriority, p.Priority)
	}
	return nil
}

// validateUpdate checks an update item before the task is loaded.
func validateUpdate(p UpdateTaskParams) error {
	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *p.Status)
	}
	return nil
}

func validatePriority(priority domain.Priority) error {
	if !priority.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPriority, priority)
	}
	return nil
}

func validateComment(comment string) error {
	if strings.TrimSpace(comment) == "" {
		return domain.ErrEmptyComment
	}
	return nil
}
