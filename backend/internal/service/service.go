package service

import (
	"context"
	stderrors "errors"
	"slices"

	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/validation"
)

// ChangePublisher receives every committed write for the board feed.
type ChangePublisher interface {
	Publish(ctx context.Context, boardId domain.BoardId, change domain.Change)
}

// fieldNames returns the sorted names flagged as changed.
func fieldNames(fields map[string]bool) []string {
	names := make([]string, 0, len(fields))
	for name, set := range fields {
		if set {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// validationError converts a *validation.Error for the HTTP layer and passes
// anything else through.
func validationError(err error) error {
	var verr *validation.Error
	if stderrors.As(err, &verr) {
		return verr.StatusError()
	}
	return err
}
