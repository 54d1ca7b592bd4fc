// Package mocks provides testify doubles for toolchain.Runner.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/thoreinstein/tns/internal/toolchain"
)

// Runner is a mock toolchain.Runner.
type Runner struct {
	mock.Mock
}

var _ toolchain.Runner = (*Runner)(nil)

// NewRunner creates a mock runner whose expectations are asserted when
// the test finishes.
func NewRunner(t interface {
	mock.TestingT
	Cleanup(func())
}) *Runner {
	m := &Runner{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// LookPath implements toolchain.Runner.
func (m *Runner) LookPath(name string) (string, error) {
	ret := m.Called(name)
	return ret.String(0), ret.Error(1)
}

// Output implements toolchain.Runner.
func (m *Runner) Output(ctx context.Context, name string, args ...string) (toolchain.Result, error) {
	ret := m.Called(ctx, name, args)
	return ret.Get(0).(toolchain.Result), ret.Error(1)
}

// Stream implements toolchain.Runner.
func (m *Runner) Stream(ctx context.Context, name string, args ...string) error {
	ret := m.Called(ctx, name, args)
	return ret.Error(0)
}
