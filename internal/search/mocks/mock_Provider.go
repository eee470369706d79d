// Package mocks provides test doubles for the search provider.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"
)

// MockProvider is a mock type for the Provider interface.
type MockProvider struct {
	mock.Mock
}

// Search provides a mock function with given fields: ctx, query
func (_m *MockProvider) Search(ctx context.Context, query string) ([]string, error) {
	ret := _m.Called(ctx, query)

	if len(ret) == 0 {
		panic("no return value specified for Search")
	}

	var r0 []string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]string, error)); ok {
		return rf(ctx, query)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewMockProvider creates a new instance of MockProvider. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewMockProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProvider {
	m := &MockProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
