package cases

import "github.com/aatifsyed/errgo"

//errgo:errors
func pickBucket(n int) (int, bucketError) {
	switch {
	case n < 0:
		return 0, errgo.New(OutOfRange)
	case n > 100:
		return 0, errgo.New(OutOfRange)
	}
	return n, nil
}
