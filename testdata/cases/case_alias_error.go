package cases

import (
	"os"

	errs "github.com/aatifsyed/errgo"
)

//errgo:errors
func readManifest(path string) ([]byte, ManifestError) {
	if path == "" {
		return nil, errs.New(EmptyPath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New(Unreadable{
			Path:  errs.Val[string](path),
			Cause: errs.Val[error](err),
		})
	}
	return data, nil
}
