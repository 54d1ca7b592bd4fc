// Package mocks provides testify doubles for platform.ProjectService.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/thoreinstein/tns/internal/platform"
)

// ProjectService is a mock platform.ProjectService.
type ProjectService struct {
	mock.Mock
}

var _ platform.ProjectService = (*ProjectService)(nil)

// NewProjectService creates a mock service whose expectations are
// asserted when the test finishes.
func NewProjectService(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProjectService {
	m := &ProjectService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Validate implements platform.ProjectService.
func (m *ProjectService) Validate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// CreateProject implements platform.ProjectService.
func (m *ProjectService) CreateProject(ctx context.Context, root, frameworkDir string) error {
	return m.Called(ctx, root, frameworkDir).Error(0)
}

// InterpolateData implements platform.ProjectService.
func (m *ProjectService) InterpolateData(ctx context.Context, root string) error {
	return m.Called(ctx, root).Error(0)
}

// AfterCreateProject implements platform.ProjectService.
func (m *ProjectService) AfterCreateProject(ctx context.Context, root string) error {
	return m.Called(ctx, root).Error(0)
}

// PrepareProject implements platform.ProjectService.
func (m *ProjectService) PrepareProject(ctx context.Context, displayName string, platformKeys []string) (string, error) {
	ret := m.Called(ctx, displayName, platformKeys)
	return ret.String(0), ret.Error(1)
}

// BuildProject implements platform.ProjectService.
func (m *ProjectService) BuildProject(ctx context.Context, root string) error {
	return m.Called(ctx, root).Error(0)
}
