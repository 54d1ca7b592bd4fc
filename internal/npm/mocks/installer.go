// Package mocks provides testify doubles for npm.Installer.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/thoreinstein/tns/internal/npm"
)

// Installer is a mock npm.Installer.
type Installer struct {
	mock.Mock
}

var _ npm.Installer = (*Installer)(nil)

// NewInstaller creates a mock installer whose expectations are asserted
// when the test finishes.
func NewInstaller(t interface {
	mock.TestingT
	Cleanup(func())
}) *Installer {
	m := &Installer{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Install implements npm.Installer.
func (m *Installer) Install(ctx context.Context, name, destDir string) (string, error) {
	ret := m.Called(ctx, name, destDir)
	return ret.String(0), ret.Error(1)
}
