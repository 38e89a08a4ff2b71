package uploader_test

import (
	"context"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/uploader"
	mock "github.com/stretchr/testify/mock"
)

type mockT interface {
	mock.TestingT
	Cleanup(func())
}

// MockTransport is a mock implementation of uploader.Transport.
type MockTransport struct {
	mock.Mock
}

func NewMockTransport(t mockT) *MockTransport {
	m := &MockTransport{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockTransport_Expecter struct {
	mock *mock.Mock
}

func (_m *MockTransport) EXPECT() *MockTransport_Expecter {
	return &MockTransport_Expecter{mock: &_m.Mock}
}

func (_mock *MockTransport) Upload(ctx context.Context, files []*domain.FileHandle, progress uploader.ProgressFunc) (*domain.UploadResponse, error) {
	ret := _mock.Called(ctx, files, progress)

	if len(ret) == 0 {
		panic("no return value specified for Upload")
	}

	var r0 *domain.UploadResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.UploadResponse)
	}

	return r0, ret.Error(1)
}

type MockTransport_Upload_Call struct {
	*mock.Call
}

func (_e *MockTransport_Expecter) Upload(ctx interface{}, files interface{}, progress interface{}) *MockTransport_Upload_Call {
	return &MockTransport_Upload_Call{Call: _e.mock.On("Upload", ctx, files, progress)}
}

func (_c *MockTransport_Upload_Call) Run(run func(ctx context.Context, files []*domain.FileHandle, progress uploader.ProgressFunc)) *MockTransport_Upload_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].([]*domain.FileHandle), args[2].(uploader.ProgressFunc))
	})
	return _c
}

func (_c *MockTransport_Upload_Call) Return(resp *domain.UploadResponse, err error) *MockTransport_Upload_Call {
	_c.Call.Return(resp, err)
	return _c
}

func (_c *MockTransport_Upload_Call) Once() *MockTransport_Upload_Call {
	_c.Call.Once()
	return _c
}

func (_c *MockTransport_Upload_Call) Times(n int) *MockTransport_Upload_Call {
	_c.Call.Times(n)
	return _c
}

// MockRefresher is a mock implementation of uploader.Refresher.
type MockRefresher struct {
	mock.Mock
}

func NewMockRefresher(t mockT) *MockRefresher {
	m := &MockRefresher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockRefresher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockRefresher) EXPECT() *MockRefresher_Expecter {
	return &MockRefresher_Expecter{mock: &_m.Mock}
}

func (_mock *MockRefresher) Refresh(ctx context.Context) {
	_mock.Called(ctx)
}

type MockRefresher_Refresh_Call struct {
	*mock.Call
}

func (_e *MockRefresher_Expecter) Refresh(ctx interface{}) *MockRefresher_Refresh_Call {
	return &MockRefresher_Refresh_Call{Call: _e.mock.On("Refresh", ctx)}
}

func (_c *MockRefresher_Refresh_Call) Return() *MockRefresher_Refresh_Call {
	_c.Call.Return()
	return _c
}

func (_c *MockRefresher_Refresh_Call) Once() *MockRefresher_Refresh_Call {
	_c.Call.Once()
	return _c
}
