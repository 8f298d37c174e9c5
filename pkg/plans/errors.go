package plans

import "errors"

var (
	ErrFailedToLoadCatalog      = errors.New("failed to load plan catalog")
	ErrInvalidPlanConfiguration = errors.New("invalid plan configuration")
	ErrMissingPlan              = errors.New("plan catalog must define every known plan")
)
