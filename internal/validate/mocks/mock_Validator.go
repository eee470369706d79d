// Package mocks provides test doubles for candidate validation.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	model "github.com/sells-group/catalog-resolver/internal/model"
)

// MockValidator is a mock type for the Validator interface.
type MockValidator struct {
	mock.Mock
}

// Validate provides a mock function with given fields: ctx, rec, candidateURL
func (_m *MockValidator) Validate(ctx context.Context, rec *model.CatalogRecord, candidateURL string) (*model.ValidationResult, error) {
	ret := _m.Called(ctx, rec, candidateURL)

	if len(ret) == 0 {
		panic("no return value specified for Validate")
	}

	var r0 *model.ValidationResult
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, *model.CatalogRecord, string) (*model.ValidationResult, error)); ok {
		return rf(ctx, rec, candidateURL)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.ValidationResult)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewMockValidator creates a new instance of MockValidator. It also registers
// a testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewMockValidator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockValidator {
	m := &MockValidator{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
