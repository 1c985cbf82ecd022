package cases

import "github.com/aatifsyed/errgo"

// trim removes surrounding noise from a value.
//errgo:errors
//errgo:attr errgo:derive json
func trim(v string) (string, TrimError) {
	if v == "" {
		return "", errgo.New(Empty, "errgo:msg value is empty")
	}
	return v, nil
}
