// Package mocks provides mock implementations of the gateway ports for tests.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// Hand-written doubles for the auth ports live in internal/mocks/auth.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	backend := mocks.NewMockProjectBackend(ctrl)
//	backend.EXPECT().Decide(gomock.Any(), gomock.Any(), "p1", true).Return(nil)
package mocks

// ProjectBackend: CreateProject, ListProjects, GetProject, DeleteProject, Decide,
// UpdateProgress, Finalize, Start, Approve, RequestFaculty
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=project_backend_mock.go github.com/Dinesh02121/project-portal/internal/ports ProjectBackend

// FileStore: ListFiles, FileContent, DownloadFile
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=file_store_mock.go github.com/Dinesh02121/project-portal/internal/ports FileStore

// AnalysisOracle: Analyze
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=analysis_oracle_mock.go github.com/Dinesh02121/project-portal/internal/ports AnalysisOracle

// IdentityAuthority: Verify, Login
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=identity_authority_mock.go github.com/Dinesh02121/project-portal/internal/ports IdentityAuthority

// AdvisoryCache: Put, Get, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=advisory_cache_mock.go github.com/Dinesh02121/project-portal/internal/ports AdvisoryCache

// CollegeRegistry: ListColleges, SetCollegeStatus
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=college_registry_mock.go github.com/Dinesh02121/project-portal/internal/ports CollegeRegistry
