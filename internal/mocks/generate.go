// Package mocks provides gomock doubles for the portal's ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockAuthAPI(ctrl)
//	api.EXPECT().Me(gomock.Any()).Return(identity, nil)
package mocks

// AuthAPI: Login, Me
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_api_mock.go github.com/ragportal/portal-ui/internal/ports AuthAPI

// TokenStorage: Load, Save, Clear
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_storage_mock.go github.com/ragportal/portal-ui/internal/ports TokenStorage

// PortalAPI: every backend endpoint used by the feature screens
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=portal_api_mock.go github.com/ragportal/portal-ui/internal/ports PortalAPI
