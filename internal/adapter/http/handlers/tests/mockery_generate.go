package tests

// Mock generation for handler tests. The hand-written mocks in mocks_test.go
// follow the same shape as the generated ones.
//
// Usage:
//   go generate ./internal/adapter/http/handlers/tests
//
//go:generate mockery --name ProjectService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename project_service_mock.go --with-expecter
//go:generate mockery --name TeamService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename team_service_mock.go --with-expecter
