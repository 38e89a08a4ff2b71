package pipeline_test

import (
	"context"
	"time"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/uploader"
	mock "github.com/stretchr/testify/mock"
)

type mockT interface {
	mock.TestingT
	Cleanup(func())
}

// MockFilesProvider is a mock implementation of pipeline.FilesProvider.
type MockFilesProvider struct {
	mock.Mock
}

func NewMockFilesProvider(t mockT) *MockFilesProvider {
	m := &MockFilesProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockFilesProvider_Expecter struct {
	mock *mock.Mock
}

func (_m *MockFilesProvider) EXPECT() *MockFilesProvider_Expecter {
	return &MockFilesProvider_Expecter{mock: &_m.Mock}
}

func (_mock *MockFilesProvider) Files(ctx context.Context) ([]*domain.File, error) {
	ret := _mock.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Files")
	}

	var r0 []*domain.File
	if returnFunc, ok := ret.Get(0).(func(context.Context) []*domain.File); ok {
		r0 = returnFunc(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*domain.File)
	}

	return r0, ret.Error(1)
}

type MockFilesProvider_Files_Call struct {
	*mock.Call
}

func (_e *MockFilesProvider_Expecter) Files(ctx interface{}) *MockFilesProvider_Files_Call {
	return &MockFilesProvider_Files_Call{Call: _e.mock.On("Files", ctx)}
}

func (_c *MockFilesProvider_Files_Call) Return(files []*domain.File, err error) *MockFilesProvider_Files_Call {
	_c.Call.Return(files, err)
	return _c
}

// MockFileUpdater is a mock implementation of pipeline.FileUpdater.
type MockFileUpdater struct {
	mock.Mock
}

func NewMockFileUpdater(t mockT) *MockFileUpdater {
	m := &MockFileUpdater{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockFileUpdater_Expecter struct {
	mock *mock.Mock
}

func (_m *MockFileUpdater) EXPECT() *MockFileUpdater_Expecter {
	return &MockFileUpdater_Expecter{mock: &_m.Mock}
}

func (_mock *MockFileUpdater) UpdateOrCreateFile(ctx context.Context, file *domain.File) error {
	ret := _mock.Called(ctx, file)

	if len(ret) == 0 {
		panic("no return value specified for UpdateOrCreateFile")
	}

	return ret.Error(0)
}

type MockFileUpdater_UpdateOrCreateFile_Call struct {
	*mock.Call
}

func (_e *MockFileUpdater_Expecter) UpdateOrCreateFile(ctx interface{}, file interface{}) *MockFileUpdater_UpdateOrCreateFile_Call {
	return &MockFileUpdater_UpdateOrCreateFile_Call{Call: _e.mock.On("UpdateOrCreateFile", ctx, file)}
}

func (_c *MockFileUpdater_UpdateOrCreateFile_Call) Return(err error) *MockFileUpdater_UpdateOrCreateFile_Call {
	_c.Call.Return(err)
	return _c
}

func (_c *MockFileUpdater_UpdateOrCreateFile_Call) Run(run func(ctx context.Context, file *domain.File)) *MockFileUpdater_UpdateOrCreateFile_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*domain.File))
	})
	return _c
}

// MockReportProvider is a mock implementation of pipeline.ReportProvider.
type MockReportProvider struct {
	mock.Mock
}

func NewMockReportProvider(t mockT) *MockReportProvider {
	m := &MockReportProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockReportProvider_Expecter struct {
	mock *mock.Mock
}

func (_m *MockReportProvider) EXPECT() *MockReportProvider_Expecter {
	return &MockReportProvider_Expecter{mock: &_m.Mock}
}

func (_mock *MockReportProvider) DailyReport(ctx context.Context, date time.Time) (*domain.DailyReport, error) {
	ret := _mock.Called(ctx, date)

	if len(ret) == 0 {
		panic("no return value specified for DailyReport")
	}

	var r0 *domain.DailyReport
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.DailyReport)
	}

	return r0, ret.Error(1)
}

type MockReportProvider_DailyReport_Call struct {
	*mock.Call
}

func (_e *MockReportProvider_Expecter) DailyReport(ctx interface{}, date interface{}) *MockReportProvider_DailyReport_Call {
	return &MockReportProvider_DailyReport_Call{Call: _e.mock.On("DailyReport", ctx, date)}
}

func (_c *MockReportProvider_DailyReport_Call) Return(report *domain.DailyReport, err error) *MockReportProvider_DailyReport_Call {
	_c.Call.Return(report, err)
	return _c
}

// MockReportGenerator is a mock implementation of pipeline.ReportGenerator.
type MockReportGenerator struct {
	mock.Mock
}

func NewMockReportGenerator(t mockT) *MockReportGenerator {
	m := &MockReportGenerator{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockReportGenerator_Expecter struct {
	mock *mock.Mock
}

func (_m *MockReportGenerator) EXPECT() *MockReportGenerator_Expecter {
	return &MockReportGenerator_Expecter{mock: &_m.Mock}
}

func (_mock *MockReportGenerator) GenerateDaily(outputPath string, report *domain.DailyReport) error {
	ret := _mock.Called(outputPath, report)

	if len(ret) == 0 {
		panic("no return value specified for GenerateDaily")
	}

	return ret.Error(0)
}

type MockReportGenerator_GenerateDaily_Call struct {
	*mock.Call
}

func (_e *MockReportGenerator_Expecter) GenerateDaily(outputPath interface{}, report interface{}) *MockReportGenerator_GenerateDaily_Call {
	return &MockReportGenerator_GenerateDaily_Call{Call: _e.mock.On("GenerateDaily", outputPath, report)}
}

func (_c *MockReportGenerator_GenerateDaily_Call) Return(err error) *MockReportGenerator_GenerateDaily_Call {
	_c.Call.Return(err)
	return _c
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

func (_c *MockTransport_Upload_Call) Return(resp *domain.UploadResponse, err error) *MockTransport_Upload_Call {
	_c.Call.Return(resp, err)
	return _c
}

func (_c *MockTransport_Upload_Call) Once() *MockTransport_Upload_Call {
	_c.Call.Once()
	return _c
}
