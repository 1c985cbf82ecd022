package cases

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aatifsyed/errgo"
)

//errgo:errors
func loadConfig(store recordStore, app string) (*appConfig, LoadConfigError) {
	data, err := store.record(context.Background(), filepath.Join("config", app))
	if err != nil {
		data, err = os.ReadFile(filepath.Join("configs", app))
		if err != nil {
			return nil, errgo.New(NoConfig{
				App:   errgo.Val[string](app),
				Cause: errgo.Val[error](err),
			})
		}
	}

	var cfg appConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errgo.New(Unparseable{
			App:   errgo.Val[string](app),
			Cause: errgo.Val[error](err),
		})
	}

	return &cfg, nil
}
