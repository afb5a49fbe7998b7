package ports

// Hasher fingerprints build artifacts.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint returns a stable hex digest of the file's content.
	Fingerprint(path string) (string, error)
}
