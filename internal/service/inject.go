package service

import (
	"github.com/talentflow/ui-api/internal/core"
	apperrors "github.com/talentflow/ui-api/internal/errors"
)

// injectFailure consults the failure injector for a mutation. It runs after
// validation and existence checks and before any write, so an injected error
// always means the store was left untouched. A nil injector disables
// injection entirely.
func injectFailure(injector core.FailureInjector, op core.Operation) error {
	if injector == nil || !injector.Decide(op) {
		return nil
	}
	return apperrors.Injectedf("injected failure for %s", op)
}
