package ports

// PathRegistrar adds directories to the executable search path.
//
//go:generate go run go.uber.org/mock/mockgen -source=path_registrar.go -destination=mocks/mock_path_registrar.go -package=mocks
type PathRegistrar interface {
	// AddPath prepends dir to the search path of this process and of later job steps.
	AddPath(dir string) error
}
