package cases

import "context"

// recordStore is the remote side the config loader falls back from.
type recordStore interface {
	record(ctx context.Context, key string) ([]byte, error)
}

type appConfig struct {
	Name string `json:"name"`
}
