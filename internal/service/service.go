package service

import (
	"github.com/smartcity/lowemission/internal/domain"
)

// FeatureSource is re-exported from domain for convenience
type FeatureSource = domain.FeatureSource
